package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestBuiltinScenes_Valid(t *testing.T) {
	tests := []struct {
		name           string
		create         func() *Scene
		expectedShapes int
	}{
		{"demo", NewDemoScene, 4},
		{"simple", NewSimpleScene, 2},
		{"metal", NewMetalScene, 4},
		{"classic", NewClassicScene, 4},
		{"ground", NewGroundScene, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.create()
			if s.GetPrimitiveCount() != tt.expectedShapes {
				t.Errorf("Expected %d shapes, got %d", tt.expectedShapes, s.GetPrimitiveCount())
			}
			if err := s.CameraConfig.Validate(); err != nil {
				t.Errorf("Invalid camera: %v", err)
			}
			if err := s.SamplingConfig.Validate(); err != nil {
				t.Errorf("Invalid sampling config: %v", err)
			}

			// Every scene has the ground below the camera
			ray := core.NewRay(s.CameraConfig.Center, core.NewVec3(0, -1, 0))
			if _, isHit := s.World().Hit(ray, 0.001, math.Inf(1)); !isHit {
				t.Error("Expected a downward ray to hit the ground")
			}
		})
	}
}

func TestScene_WorldBVHMatchesList(t *testing.T) {
	s := NewDemoScene()
	list := s.World()
	s.UseBVH = true
	bvh := s.World()

	if _, ok := list.(*geometry.List); !ok {
		t.Errorf("Expected *geometry.List without BVH, got %T", list)
	}
	if _, ok := bvh.(*geometry.BVH); !ok {
		t.Errorf("Expected *geometry.BVH with UseBVH, got %T", bvh)
	}

	camera := s.Camera()
	for i := 0; i <= 20; i++ {
		for j := 0; j <= 10; j++ {
			ray := camera.GetRay(float64(i)/20, float64(j)/10)
			a, hitA := list.Hit(ray, 0.001, math.Inf(1))
			b, hitB := bvh.Hit(ray, 0.001, math.Inf(1))
			if hitA != hitB || (hitA && math.Abs(a.T-b.T) > 1e-9) {
				t.Fatalf("List and BVH disagree at (%d,%d)", i, j)
			}
		}
	}
}

func TestScene_SetImageSize(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		expectedWidth  int
		expectedHeight int
	}{
		{"derive height from aspect", 400, 0, 400, 225},
		{"explicit size", 300, 300, 300, 300},
		{"keep width", 0, 100, 400, 100},
		{"tiny width never zero height", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimpleScene()
			s.SetImageSize(tt.width, tt.height)

			if s.SamplingConfig.Width != tt.expectedWidth || s.SamplingConfig.Height != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight,
					s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
			aspect := float64(tt.expectedWidth) / float64(tt.expectedHeight)
			if math.Abs(s.CameraConfig.AspectRatio-aspect) > 1e-12 {
				t.Errorf("Expected aspect %f, got %f", aspect, s.CameraConfig.AspectRatio)
			}
		})
	}
}

func TestScene_NewRaytracer(t *testing.T) {
	s := NewGroundScene()
	s.SetImageSize(4, 2)
	s.SamplingConfig.SamplesPerPixel = 1
	s.SamplingConfig.MaxDepth = 2

	rt, err := s.NewRaytracer(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	buffer, stats := rt.Render()
	if buffer.Width != 4 || buffer.Height != 2 || stats.TotalPixels != 8 {
		t.Errorf("Unexpected render: %dx%d, %+v", buffer.Width, buffer.Height, stats)
	}

	s.CameraConfig.LookAt = s.CameraConfig.Center
	if _, err := s.NewRaytracer(nil); err == nil {
		t.Error("Expected error for degenerate camera")
	}
}

func TestScene_AddSphere(t *testing.T) {
	s := New("custom")
	sphere := s.AddSphere(core.NewVec3(0, 0, -2), 0.5, material.NewDielectric(1.5))

	if s.GetPrimitiveCount() != 1 || s.Shapes[0] != sphere {
		t.Errorf("Expected the sphere to be added")
	}
	if s.Integrator().Config().MaxDepth != s.SamplingConfig.MaxDepth {
		t.Errorf("Integrator depth should follow the sampling config")
	}
}
