package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// nearZeroEpsilon is the threshold below which a scatter direction is degenerate
const nearZeroEpsilon = 1e-8

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// Diffuse surfaces never absorb: attenuation is the albedo itself.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// normal + random unit vector gives a cosine-distributed direction
	scatterDirection := hit.Normal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// Opposite vectors cancel out; fall back to the normal
	if scatterDirection.NearZero(nearZeroEpsilon) {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection.Normalize()),
		Attenuation: l.Albedo,
	}, true
}
