package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"golang.org/x/image/colornames"
)

// SceneFile is the on-disk JSON layout of a scene
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Camera      CameraCfg               `json:"camera"`
	Sampling    SamplingCfg             `json:"sampling"`
	Background  *BackgroundCfg          `json:"background,omitempty"`
	UseBVH      bool                    `json:"useBVH,omitempty"`
	Spheres     []SphereCfg             `json:"spheres"`

	RussianRouletteMinBounces int `json:"russianRouletteMinBounces,omitempty"`
}

// CameraCfg holds optional camera overrides; omitted fields keep the defaults
type CameraCfg struct {
	Center      *Vec3Cfg `json:"center,omitempty"`
	LookAt      *Vec3Cfg `json:"lookAt,omitempty"`
	Up          *Vec3Cfg `json:"up,omitempty"`
	VFov        float64  `json:"vfov,omitempty"`
	AspectRatio float64  `json:"aspectRatio,omitempty"`
}

// SamplingCfg holds optional sampling overrides. Pointers tell an explicit
// zero (such as maxDepth 0) apart from an omitted field.
type SamplingCfg struct {
	Width           *int   `json:"width,omitempty"`
	Height          *int   `json:"height,omitempty"`
	SamplesPerPixel *int   `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int   `json:"maxDepth,omitempty"`
	NumWorkers      *int   `json:"numWorkers,omitempty"`
	TileSize        *int   `json:"tileSize,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
}

// BackgroundCfg describes the sky gradient
type BackgroundCfg struct {
	Bottom ColorCfg `json:"bottom"`
	Top    ColorCfg `json:"top"`
}

// SphereCfg describes one sphere and its material
type SphereCfg struct {
	Center   Vec3Cfg     `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

// MaterialCfg selects a material by type; unused fields are ignored
type MaterialCfg struct {
	Type            string   `json:"type"` // lambertian, metal or dielectric
	Albedo          ColorCfg `json:"albedo,omitempty"`
	Fuzz            float64  `json:"fuzz,omitempty"`
	RefractiveIndex float64  `json:"refractiveIndex,omitempty"`
}

// Vec3Cfg is a vector written as [x, y, z]
type Vec3Cfg core.Vec3

// UnmarshalJSON implements json.Unmarshaler
func (v *Vec3Cfg) UnmarshalJSON(data []byte) error {
	xyz, err := decodeTriple(data)
	if err != nil {
		return fmt.Errorf("vector must be [x, y, z]: %w", err)
	}
	*v = Vec3Cfg(core.NewVec3(xyz[0], xyz[1], xyz[2]))
	return nil
}

// MarshalJSON implements json.Marshaler
func (v Vec3Cfg) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// ColorCfg is a linear RGB color written as [r, g, b] or as a CSS color name
type ColorCfg core.Vec3

// UnmarshalJSON implements json.Unmarshaler
func (c *ColorCfg) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		named, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = ColorCfg(core.NewVec3(float64(named.R)/255, float64(named.G)/255, float64(named.B)/255))
		return nil
	}

	rgb, err := decodeTriple(data)
	if err != nil {
		return fmt.Errorf("color must be [r, g, b] or a color name: %w", err)
	}
	*c = ColorCfg(core.NewVec3(rgb[0], rgb[1], rgb[2]))
	return nil
}

// decodeTriple reads a JSON array of exactly three numbers
func decodeTriple(data []byte) ([]float64, error) {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if len(values) != 3 {
		return nil, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return values, nil
}

// MarshalJSON implements json.Marshaler
func (c ColorCfg) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.X, c.Y, c.Z})
}

// Build creates the material described by the config
func (m MaterialCfg) Build() (material.Material, error) {
	albedo := core.Vec3(m.Albedo)
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		if m.Fuzz < 0 {
			return nil, fmt.Errorf("metal fuzz must be >= 0, got %g", m.Fuzz)
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("dielectric refractive index must be > 0, got %g", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

// Build applies the overrides to the default camera
func (c CameraCfg) Build() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	if c.Center != nil {
		config.Center = core.Vec3(*c.Center)
	}
	if c.LookAt != nil {
		config.LookAt = core.Vec3(*c.LookAt)
	}
	if c.Up != nil {
		config.Up = core.Vec3(*c.Up)
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	if c.AspectRatio != 0 {
		config.AspectRatio = c.AspectRatio
	}
	return config
}

// Build applies the overrides to base
func (c SamplingCfg) Build(base renderer.SamplingConfig) renderer.SamplingConfig {
	config := base
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&config.Width, c.Width)
	setInt(&config.Height, c.Height)
	setInt(&config.SamplesPerPixel, c.SamplesPerPixel)
	setInt(&config.MaxDepth, c.MaxDepth)
	setInt(&config.NumWorkers, c.NumWorkers)
	setInt(&config.TileSize, c.TileSize)
	if c.Seed != nil {
		config.Seed = *c.Seed
	}
	return config
}

// Build turns the file contents into a validated scene
func (f SceneFile) Build() (*scene.Scene, error) {
	name := f.Name
	if name == "" {
		name = "custom"
	}
	s := scene.New(name)
	s.Description = f.Description
	s.UseBVH = f.UseBVH
	s.RussianRouletteMinBounces = f.RussianRouletteMinBounces
	s.CameraConfig = f.Camera.Build()
	s.SamplingConfig = f.Sampling.Build(s.SamplingConfig)
	if err := s.SamplingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("sampling: %w", err)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	// Image and camera aspect ratios must agree; both dimensions win over the camera
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	switch {
	case f.Sampling.Width != nil && f.Sampling.Height != nil:
		s.SetImageSize(width, height)
	case f.Sampling.Height != nil:
		s.SetImageSize(max(1, int(math.Round(float64(height)*s.CameraConfig.AspectRatio))), height)
	case f.Sampling.Width != nil || f.Camera.AspectRatio != 0:
		s.SetImageSize(width, 0)
	}

	if f.Background != nil {
		s.Background.Bottom = core.Vec3(f.Background.Bottom)
		s.Background.Top = core.Vec3(f.Background.Top)
	}

	for i, sphere := range f.Spheres {
		if sphere.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		mat, err := sphere.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(core.Vec3(sphere.Center), sphere.Radius, mat)
	}

	return s, nil
}

// ParseScene decodes a JSON scene; unknown fields are rejected
func ParseScene(r io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return file.Build()
}

// LoadScene reads and parses a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := ParseScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
