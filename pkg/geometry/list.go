package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is a flat collection of shapes searched linearly
type List struct {
	Shapes []Shape
}

// NewList creates a list holding the given shapes
func NewList(shapes ...Shape) *List {
	return &List{Shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape to the list
func (l *List) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Len returns the number of shapes in the list
func (l *List) Len() int {
	return len(l.Shapes)
}

// Hit scans every shape and keeps the nearest intersection.
// The upper bound shrinks to the best t found so far.
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all member boxes
func (l *List) BoundingBox() core.AABB {
	if len(l.Shapes) == 0 {
		return core.AABB{}
	}
	box := l.Shapes[0].BoundingBox()
	for _, shape := range l.Shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
