package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_AlwaysScattersWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	hit := upHit(glass)

	for i := 0; i < 200; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if !result.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
		if math.Abs(result.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", result.Scattered.Direction.Length())
		}
	}
}

func TestDielectric_NormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := upHit(glass)

	// r0 = 0.04 at normal incidence: a draw above it refracts straight through
	refracted, _ := glass.Scatter(ray, hit, fixedSampler{value1D: 0.5})
	if refracted.Scattered.Direction.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected straight transmission, got %v", refracted.Scattered.Direction)
	}

	// A draw below the reflectance reflects back
	reflected, _ := glass.Scatter(ray, hit, fixedSampler{value1D: 0.01})
	if reflected.Scattered.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected reflection, got %v", reflected.Scattered.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass heading out at 60° from the normal: 1.5*sin(60°) > 1
	direction := core.NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), direction)
	hit := upHit(glass)
	hit.FrontFace = false

	expected := core.Reflect(direction, hit.Normal)

	// Even a draw of ~1 must reflect
	for _, draw := range []float64{0.0, 0.5, 0.999999} {
		result, scattered := glass.Scatter(ray, hit, fixedSampler{value1D: draw})
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Errorf("draw %f: expected total internal reflection %v, got %v", draw, expected, result.Scattered.Direction)
		}
	}
}

func TestDielectric_RefractsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	direction := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), direction)

	result, _ := glass.Scatter(ray, upHit(glass), fixedSampler{value1D: 0.99})

	// sin(out) = sin(45°)/1.5
	out := result.Scattered.Direction
	expectedSin := math.Sin(math.Pi/4) / 1.5
	if math.Abs(out.X-expectedSin) > 1e-9 {
		t.Errorf("Expected sin of refracted angle %f, got %f", expectedSin, out.X)
	}
	if out.Y >= 0 {
		t.Errorf("Refracted ray should continue into the glass, got %v", out)
	}
}

func TestReflectance_InUnitInterval(t *testing.T) {
	ratios := []float64{1.0 / 1.5, 1.5, 1.0 / 2.42, 2.42, 1.0 / 1.33, 1.33, 1.0}

	for _, eta := range ratios {
		for i := 0; i <= 100; i++ {
			cosine := float64(i) / 100
			r := Reflectance(cosine, eta)
			if r < 0 || r > 1 {
				t.Errorf("Reflectance(%f, %f) = %f outside [0,1]", cosine, eta, r)
			}
		}
	}

	// Grazing incidence reflects everything
	if r := Reflectance(0, 1.0/1.5); math.Abs(r-1) > 1e-12 {
		t.Errorf("Expected full reflectance at grazing angle, got %f", r)
	}
	// Normal incidence air-glass: 4%
	if r := Reflectance(1, 1.0/1.5); math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", r)
	}
}

func TestDielectric_FresnelMix(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(7)

	// Shallow entry angle: Schlick gives a sizeable reflection fraction
	direction := core.NewVec3(1, -0.2, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-5, 1, 0), direction)
	hit := upHit(glass)

	cosTheta := -direction.Dot(hit.Normal)
	expected := Reflectance(cosTheta, 1.0/1.5)

	reflections := 0
	const n = 20000
	for i := 0; i < n; i++ {
		result, _ := glass.Scatter(ray, hit, sampler)
		if result.Scattered.Direction.Y > 0 {
			reflections++
		}
	}

	fraction := float64(reflections) / n
	if math.Abs(fraction-expected) > 0.015 {
		t.Errorf("Expected reflection fraction ~%f, got %f", expected, fraction)
	}
}
