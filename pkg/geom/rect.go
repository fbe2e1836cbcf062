package geom

// Rect is a rectangle given by its top-left corner and size. Rooms and
// corridors are stored this way.
type Rect struct {
	Position Point   `json:"position"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Region converts the rectangle to bound form.
func (r Rect) Region() Region {
	return NewRegion(r.Position.X, r.Position.Y, r.Width, r.Height)
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Center(r.Region())
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// RectOf converts a region to top-left/size form. Inverted bounds are
// normalized so the result always has a non-negative size.
func RectOf(r Region) Rect {
	x, y := r.X.Min, r.Y.Min
	if r.X.Max < x {
		x = r.X.Max
	}
	if r.Y.Max < y {
		y = r.Y.Max
	}
	return Rect{Position: Point{X: x, Y: y}, Width: Width(r), Height: Height(r)}
}
