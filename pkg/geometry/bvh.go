package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes for leaf nodes (nil for internal nodes)
}

// BVH is an optional drop-in for List. It returns the same nearest hit,
// only faster on scenes with many shapes.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Partitioning reorders the slice; keep the caller's copy intact
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively builds the tree with median splits along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	leaf := &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	if len(shapes) <= leafThreshold {
		return leaf
	}

	axis := boundingBox.LongestAxis()
	minVal := core.AxisValue(boundingBox.Min, axis)
	maxVal := core.AxisValue(boundingBox.Max, axis)
	if maxVal <= minVal {
		return leaf
	}
	splitPos := (minVal + maxVal) * 0.5

	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		if core.AxisValue(shape.BoundingBox().Center(), axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}

	// All centers on one side: splitting would not terminate
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return leaf
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if node == nil || !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closestHit *material.HitRecord
	closestSoFar := tMax

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				closestSoFar = hit.T
				closestHit = hit
			}
		}
		return closestHit, closestHit != nil
	}

	if hit, isHit := bvh.hitNode(node.Left, ray, tMin, closestSoFar); isHit {
		closestSoFar = hit.T
		closestHit = hit
	}
	if hit, isHit := bvh.hitNode(node.Right, ray, tMin, closestSoFar); isHit {
		closestHit = hit
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}
