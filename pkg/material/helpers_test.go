package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	value1D float64
	value2D core.Vec2
	value3D core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.value1D }
func (f fixedSampler) Get2D() core.Vec2 { return f.value2D }
func (f fixedSampler) Get3D() core.Vec3 { return f.value3D }

// countingSampler records how many draws were made
type countingSampler struct {
	draws int
}

func (c *countingSampler) Get1D() float64   { c.draws++; return 0.5 }
func (c *countingSampler) Get2D() core.Vec2 { c.draws++; return core.NewVec2(0.5, 0.5) }
func (c *countingSampler) Get3D() core.Vec3 { c.draws++; return core.NewVec3(0.5, 0.5, 0.5) }

func upHit(m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  m,
	}
}
