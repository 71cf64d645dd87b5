package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Config controls path termination
type Config struct {
	MaxDepth int     `json:"maxDepth"` // Maximum number of bounces
	TMin     float64 `json:"tMin"`     // Lower bound on hit distance, suppresses shadow acne
	// Bounces before Russian roulette may end a path. Zero or negative disables it.
	RussianRouletteMinBounces int `json:"russianRouletteMinBounces"`
}

// DefaultConfig returns the reference termination policy
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		TMin:     0.001,
	}
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config     Config
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A nil background uses DefaultBackground.
func NewPathTracingIntegrator(config Config, background Background) *PathTracingIntegrator {
	if background == nil {
		background = DefaultBackground()
	}
	if config.TMin <= 0 {
		config.TMin = DefaultConfig().TMin
	}
	return &PathTracingIntegrator{
		config:     config,
		background: background,
	}
}

// Config returns the integrator's termination policy
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray starting at the configured depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.RayColorDepth(ray, world, sampler, pt.config.MaxDepth)
}

// RayColorDepth follows a path for at most depth bounces.
// The running throughput is the product of every attenuation so far.
func (pt *PathTracingIntegrator) RayColorDepth(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; depth > 0; bounce++ {
		hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
		depth--

		survive, compensation := pt.applyRussianRoulette(bounce+1, throughput, sampler)
		if !survive {
			return core.Vec3{}
		}
		throughput = throughput.Multiply(compensation)
	}

	// Bounce limit reached: no more light is gathered
	return core.Vec3{}
}

// applyRussianRoulette decides whether a path continues after the given number of bounces.
// Returns (survives, compensationFactor).
func (pt *PathTracingIntegrator) applyRussianRoulette(bounces int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if pt.config.RussianRouletteMinBounces <= 0 || bounces < pt.config.RussianRouletteMinBounces {
		return true, 1.0
	}

	// Survival probability between 0.5 and 0.95 keeps compensation in [1.05, 2]
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if sampler.Get1D() > survivalProb {
		return false, 0.0
	}
	return true, 1.0 / survivalProb
}
