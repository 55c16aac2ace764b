// Package components defines ECS components for the simulation.
package components

// Position is the top-left corner of an agent's square bounding box.
type Position struct {
	X, Y float32
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float32
}

// Bounds returns the bounding box of a square of side size at pos.
func Bounds(pos Position, size float32) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size, H: size}
}

// Contains reports whether (x, y) lies inside the box, edges included.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// OverlapArea returns the area shared by two boxes, 0 when disjoint.
func (r Rect) OverlapArea(o Rect) float32 {
	w := min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	h := min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the midpoint of the box.
func (r Rect) Center() (x, y float32) {
	return r.X + r.W/2, r.Y + r.H/2
}
