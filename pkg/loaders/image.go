package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/fogleman/gg"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// At returns the color at column x of row y
func (d *ImageData) At(x, y int) core.Vec3 {
	return d.Pixels[y*d.Width+x]
}

// LoadImage loads a PNG, JPEG or PPM image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	var img image.Image
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".ppm") {
		img, err = readPPMFile(filename)
	} else {
		img, err = gg.LoadImage(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// SaveImage writes img to filename, choosing the format from the extension (.png or .ppm).
// Missing parent directories are created.
func SaveImage(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		if err := gg.SavePNG(filename, img); err != nil {
			return fmt.Errorf("failed to save PNG: %w", err)
		}
		return nil
	case ".ppm":
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create PPM file: %w", err)
		}
		if err := WritePPM(file, img); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	default:
		return fmt.Errorf("unsupported image format %q (use .png or .ppm)", filepath.Ext(filename))
	}
}

// WritePPM encodes img as an ASCII (P3) portable pixmap, one pixel per line
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// ReadPPM decodes an ASCII (P3) portable pixmap
func ReadPPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("failed to read PPM header: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("unsupported PPM variant %q", magic)
	}
	if width <= 0 || height <= 0 || maxVal <= 0 || maxVal > 255 {
		return nil, fmt.Errorf("invalid PPM header: %dx%d max %d", width, height, maxVal)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var red, green, blue int
			if _, err := fmt.Fscan(br, &red, &green, &blue); err != nil {
				return nil, fmt.Errorf("failed to read pixel (%d,%d): %w", x, y, err)
			}
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(red * 255 / maxVal),
				G: uint8(green * 255 / maxVal),
				B: uint8(blue * 255 / maxVal),
				A: 255,
			})
		}
	}
	return img, nil
}

func readPPMFile(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadPPM(file)
}
