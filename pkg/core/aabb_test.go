package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), true},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0.001, math.Inf(1), false},
		{"parallel outside slab", NewRay(NewVec3(2, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), true},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 0).Normalize()), 0.001, math.Inf(1), true},
		{"interval ends before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0.001, 3.5, false},
		{"diagonal miss", NewRay(NewVec3(3, 0, 3), NewVec3(1, 0, -1).Normalize()), 0.001, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_UnionAndAxis(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-2, 0.5, 0), NewVec3(0.5, 3, 1))

	u := a.Union(b)
	if !u.Min.Equals(NewVec3(-2, 0, 0)) || !u.Max.Equals(NewVec3(1, 3, 1)) {
		t.Errorf("Unexpected union %v", u)
	}
	if !u.Center().Equals(NewVec3(-0.5, 1.5, 0.5)) {
		t.Errorf("Unexpected center %v", u.Center())
	}
	if axis := u.LongestAxis(); axis != 0 && axis != 1 {
		t.Errorf("Expected X or Y (both length 3), got %d", axis)
	}
	if got := AxisValue(NewVec3(4, 5, 6), 2); got != 6 {
		t.Errorf("Expected z component 6, got %f", got)
	}
}
