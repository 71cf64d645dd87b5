package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the linear-light radiance arriving along ray
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}

// Background supplies the radiance for rays that leave the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically between two colors
type GradientBackground struct {
	Bottom core.Vec3 `json:"bottom"`
	Top    core.Vec3 `json:"top"`
}

// NewGradientBackground creates a gradient from bottom to top
func NewGradientBackground(bottom, top core.Vec3) GradientBackground {
	return GradientBackground{Bottom: bottom, Top: top}
}

// DefaultBackground is the white to light blue sky
func DefaultBackground() GradientBackground {
	return NewGradientBackground(core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0))
}

// Color returns the gradient color for the ray's direction
func (g GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
