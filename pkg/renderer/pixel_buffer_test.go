package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"black", 0, 0},
		{"negative clamps to zero", -0.5, 0},
		{"quarter", 0.25, 0.5},
		{"mid", 0.5, math.Sqrt(0.5)},
		{"white clamps below one", 1, 0.999},
		{"overbright clamps", 4, 0.999},
		{"NaN becomes black", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToneMap(core.NewVec3(tt.input, tt.input, tt.input))
			for _, channel := range []float64{got.X, got.Y, got.Z} {
				if math.Abs(channel-tt.expected) > 1e-12 {
					t.Errorf("Expected %f, got %f", tt.expected, channel)
				}
			}
		})
	}
}

func TestToByte_Range(t *testing.T) {
	tests := []struct {
		input    float64
		expected uint8
	}{
		{0, 0},
		{1, 255},
		{100, 255},
		{0.25, 128},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := ToByte(tt.input); got != tt.expected {
			t.Errorf("ToByte(%f): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestPixelBuffer_ToRGBA_FlipsRows(t *testing.T) {
	buffer := NewPixelBuffer(2, 3)
	buffer.Set(0, 0, core.NewVec3(1, 0, 0)) // bottom-left
	buffer.Set(1, 2, core.NewVec3(0, 0, 1)) // top-right

	img := buffer.ToRGBA()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("Expected 2x3 image, got %v", img.Bounds())
	}

	if got := img.RGBAAt(0, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Expected red at image bottom-left, got %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("Expected blue at image top-right, got %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("Expected opaque black elsewhere, got %v", got)
	}
}

func TestPixelBuffer_AverageLuminance(t *testing.T) {
	// Red, green, blue and black average to a quarter of white's luminance
	buffer := NewPixelBuffer(2, 2)
	buffer.Set(0, 0, core.NewVec3(1, 0, 0))
	buffer.Set(1, 0, core.NewVec3(0, 1, 0))
	buffer.Set(0, 1, core.NewVec3(0, 0, 1))

	expected := core.NewVec3(1, 1, 1).Luminance() / 4
	if got := buffer.AverageLuminance(); math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected average luminance %f, got %f", expected, got)
	}

	if got := NewPixelBuffer(0, 0).AverageLuminance(); got != 0 {
		t.Errorf("Expected 0 for empty buffer, got %f", got)
	}
}
