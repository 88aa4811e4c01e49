package game

import "math"

// Vec2 is a point or velocity in pixels. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Dist returns the euclidean distance to q.
func (v Vec2) Dist(q Vec2) float64 {
	dx := q.X - v.X
	dy := q.Y - v.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned box with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Overlaps reports whether two rects overlap. Touching edges do not count:
// strict inequality on all four comparisons.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// SpansX reports whether the horizontal extents of the two rects overlap.
func (r Rect) SpansX(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X
}

// Resolution is the outcome of pushing a mover out of a solid.
type Resolution struct {
	X, Y float64 // corrected top-left for the mover
	HitX bool    // pushed along the horizontal axis
	HitY bool    // pushed along the vertical axis
}

// ResolveOverlap pushes mover out of solid along the axis of minimum
// overlap. Ties go to the vertical axis, so a mover landing exactly on a
// corner settles on top of (or under) the solid rather than beside it.
func ResolveOverlap(mover, solid Rect) Resolution {
	res := Resolution{X: mover.X, Y: mover.Y}
	if !mover.Overlaps(solid) {
		return res
	}

	pushRight := solid.Right() - mover.X // positive: move mover right
	pushLeft := mover.Right() - solid.X  // positive: move mover left
	dx := pushRight
	if pushLeft < pushRight {
		dx = -pushLeft
	}

	pushDown := solid.Bottom() - mover.Y // positive: move mover down
	pushUp := mover.Bottom() - solid.Y   // positive: move mover up
	dy := pushDown
	if pushUp < pushDown {
		dy = -pushUp
	}

	if math.Abs(dx) < math.Abs(dy) {
		res.X += dx
		res.HitX = true
	} else {
		res.Y += dy
		res.HitY = true
	}
	return res
}

// MoveWithCollision applies the horizontal delta and then the vertical
// delta to box, each axis checked independently against the obstacle list.
// Obstacles whose kind is in ignore are skipped. Each axis stops at the
// first colliding obstacle found, in list order, cancelling that axis'
// displacement. Returns the moved box and the obstacle hit per axis (nil
// when the axis moved cleanly).
func MoveWithCollision(box Rect, dx, dy float64, obstacles []*Obstacle, ignore map[ObstacleKind]bool) (Rect, *Obstacle, *Obstacle) {
	var hitX, hitY *Obstacle

	box.X += dx
	for _, o := range obstacles {
		if ignore[o.Kind] {
			continue
		}
		if box.Overlaps(o.Rect) {
			box.X -= dx
			hitX = o
			break
		}
	}

	box.Y += dy
	for _, o := range obstacles {
		if ignore[o.Kind] {
			continue
		}
		if box.Overlaps(o.Rect) {
			box.Y -= dy
			hitY = o
			break
		}
	}

	return box, hitX, hitY
}
