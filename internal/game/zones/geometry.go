package zones

import "fmt"

// Vec2 is a 2D position in table units.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) String() string { return fmt.Sprintf("(%.1f,%.1f)", v.X, v.Y) }

// Size is a card footprint.
type Size struct {
	Width  float64
	Height float64
}

// DefaultCardSize is the footprint used when no configuration overrides it.
var DefaultCardSize = Size{Width: 150, Height: 210}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Left, Bottom, Right, Top float64
}

// Bounds returns the footprint of size centered on pos.
func Bounds(pos Vec2, size Size) Rect {
	return Rect{
		Left:   pos.X - size.Width/2,
		Right:  pos.X + size.Width/2,
		Bottom: pos.Y - size.Height/2,
		Top:    pos.Y + size.Height/2,
	}
}

// Overlaps reports whether r and o share a region of strictly positive area.
// Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && r.Right > o.Left && r.Bottom < o.Top && r.Top > o.Bottom
}
