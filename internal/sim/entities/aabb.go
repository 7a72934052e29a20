package entities

import "math"

// AABB is an axis-aligned bounding box used to cull the locations and
// objects a tick sub-phase needs to consider.
type AABB struct {
	TopLeft     Vec2
	BottomRight Vec2
}

// NewAABB builds an AABB from two opposite corners, normalizing the order.
func NewAABB(a, b Vec2) AABB {
	return AABB{
		TopLeft:     Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		BottomRight: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// AABBAround builds a square AABB centered on a point with the given
// half-extent ("radius").
func AABBAround(center Vec2, halfExtent float64) AABB {
	return NewAABB(
		Vec2{X: center.X - halfExtent, Y: center.Y - halfExtent},
		Vec2{X: center.X + halfExtent, Y: center.Y + halfExtent},
	)
}

// Contains reports whether the point lies within the box, inclusive of the
// boundary.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.TopLeft.X && p.X <= b.BottomRight.X &&
		p.Y >= b.TopLeft.Y && p.Y <= b.BottomRight.Y
}

// Intersects reports whether two AABBs overlap, inclusive of shared edges.
func (b AABB) Intersects(other AABB) bool {
	return b.TopLeft.X <= other.BottomRight.X && b.BottomRight.X >= other.TopLeft.X &&
		b.TopLeft.Y <= other.BottomRight.Y && b.BottomRight.Y >= other.TopLeft.Y
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec2 {
	return Vec2{
		X: (b.TopLeft.X + b.BottomRight.X) / 2,
		Y: (b.TopLeft.Y + b.BottomRight.Y) / 2,
	}
}
