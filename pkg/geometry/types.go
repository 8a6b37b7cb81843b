// Package geometry provides basic integer geometric types used throughout the application.
package geometry

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectInt represents a rectangle with integer coordinates.
// Width and Height count pixels, so a single-pixel rectangle has Width == Height == 1.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the number of pixels covered by the rectangle.
func (r RectInt) Area() int {
	return r.Width * r.Height
}

// Contains returns true if the point is inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// TopLeft returns the top-left corner.
func (r RectInt) TopLeft() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// Extent accumulates the minimal axis-aligned bounding box of a set of points.
// The zero value is not usable; create one with NewExtent.
type Extent struct {
	XMin, XMax int
	YMin, YMax int
	empty      bool
}

// NewExtent returns an empty extent.
func NewExtent() Extent {
	return Extent{empty: true}
}

// Include grows the extent to cover (x, y).
func (e *Extent) Include(x, y int) {
	if e.empty {
		e.XMin, e.XMax, e.YMin, e.YMax = x, x, y, y
		e.empty = false
		return
	}
	if x < e.XMin {
		e.XMin = x
	}
	if x > e.XMax {
		e.XMax = x
	}
	if y < e.YMin {
		e.YMin = y
	}
	if y > e.YMax {
		e.YMax = y
	}
}

// Empty reports whether any point has been included.
func (e Extent) Empty() bool {
	return e.empty
}

// Width returns the pixel width of the extent.
func (e Extent) Width() int {
	if e.empty {
		return 0
	}
	return e.XMax - e.XMin + 1
}

// Height returns the pixel height of the extent.
func (e Extent) Height() int {
	if e.empty {
		return 0
	}
	return e.YMax - e.YMin + 1
}

// Area returns the pixel area of the extent.
func (e Extent) Area() int {
	return e.Width() * e.Height()
}

// Rect converts the extent to a RectInt.
func (e Extent) Rect() RectInt {
	if e.empty {
		return RectInt{}
	}
	return RectInt{X: e.XMin, Y: e.YMin, Width: e.Width(), Height: e.Height()}
}
