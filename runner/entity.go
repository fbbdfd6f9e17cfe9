package runner

// Rect is an axis-aligned box with (X, Y) at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two boxes share interior area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Entity is anything placed in the world.
type Entity interface {
	Bounds() Rect
}

// Collides reports whether the bounds of a and b overlap.
func Collides(a, b Entity) bool {
	return a.Bounds().Overlaps(b.Bounds())
}
