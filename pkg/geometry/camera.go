package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 `json:"center"`      // Camera position (eye)
	LookAt      core.Vec3 `json:"lookAt"`      // Point the camera is looking at
	Up          core.Vec3 `json:"up"`          // Up hint, need not be orthogonal to the view direction
	VFov        float64   `json:"vfov"`        // Vertical field of view in degrees
	AspectRatio float64   `json:"aspectRatio"` // Width / height
}

// DefaultCameraConfig looks down -Z from the origin with a 90° field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}
}

// Validate reports configurations that cannot produce an orthonormal camera frame
func (c CameraConfig) Validate() error {
	if c.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	view := c.Center.Subtract(c.LookAt)
	if view.NearZero(1e-12) {
		return fmt.Errorf("camera center and look-at point coincide at %v", c.Center)
	}
	if c.Up.Cross(view).NearZero(1e-12) {
		return fmt.Errorf("up vector %v is parallel to the view direction", c.Up)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	right, up, back core.Vec3 // Orthonormal camera frame
}

// NewCamera creates a camera from the given configuration.
// It panics when the configuration is degenerate; callers handling user input
// should call Validate first.
func NewCamera(config CameraConfig) *Camera {
	if err := config.Validate(); err != nil {
		panic(fmt.Sprintf("invalid camera configuration: %v", err))
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	back := config.Center.Subtract(config.LookAt).Normalize()
	right := config.Up.Cross(back).Normalize()
	up := back.Cross(right)

	horizontal := right.Multiply(viewportWidth)
	vertical := up.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(back)

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		right:           right,
		up:              up,
		back:            back,
	}
}

// GetRay generates a ray for image-plane coordinates (u, v) in [0,1]².
// u runs left to right, v bottom to top.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Basis returns the camera's right, up and back unit vectors
func (c *Camera) Basis() (right, up, back core.Vec3) {
	return c.right, c.up, c.back
}
