package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PixelBuffer holds linear-light colors in row-major order.
// Pixels[0] is the bottom row of the image, matching the camera's v axis.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels [][]core.Vec3
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	pixels := make([][]core.Vec3, height)
	for j := range pixels {
		pixels[j] = make([]core.Vec3, width)
	}
	return &PixelBuffer{Width: width, Height: height, Pixels: pixels}
}

// At returns the color at column x of row y (row 0 at the bottom)
func (pb *PixelBuffer) At(x, y int) core.Vec3 {
	return pb.Pixels[y][x]
}

// Set stores the color at column x of row y
func (pb *PixelBuffer) Set(x, y int, c core.Vec3) {
	pb.Pixels[y][x] = c
}

// ToneMap applies gamma 2 and clamps every channel to [0, 0.999]
func ToneMap(c core.Vec3) core.Vec3 {
	return core.NewVec3(toneMapChannel(c.X), toneMapChannel(c.Y), toneMapChannel(c.Z))
}

func toneMapChannel(x float64) float64 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	return math.Min(math.Sqrt(x), 0.999)
}

// ToByte maps a linear channel value to 8 bits, tone mapping included
func ToByte(x float64) uint8 {
	return uint8(256 * toneMapChannel(x))
}

// ToRGBA tone maps the buffer into an 8-bit image with row 0 at the top
func (pb *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pb.Width, pb.Height))
	for j := 0; j < pb.Height; j++ {
		y := pb.Height - 1 - j
		for i := 0; i < pb.Width; i++ {
			c := pb.Pixels[j][i]
			img.SetRGBA(i, y, color.RGBA{
				R: ToByte(c.X),
				G: ToByte(c.Y),
				B: ToByte(c.Z),
				A: 255,
			})
		}
	}
	return img
}

// AverageLuminance returns the mean linear luminance of the buffer
func (pb *PixelBuffer) AverageLuminance() float64 {
	if pb.Width == 0 || pb.Height == 0 {
		return 0
	}
	total := 0.0
	for _, row := range pb.Pixels {
		for _, c := range row {
			total += c.Luminance()
		}
	}
	return total / float64(pb.Width*pb.Height)
}
