package domain

// Axis represents the single dimension along which a list is reordered
type Axis int

const (
	// Vertical lists grow downward; forward means increasing Y
	Vertical Axis = iota
	// Horizontal lists grow rightward; forward means increasing X
	Horizontal
)

// String returns the axis name used in logs and config
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Point is a position in container coordinates
type Point struct {
	X, Y float64
}

// Along returns the component of p on the axis
func (p Point) Along(a Axis) float64 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// OnAxis builds a point whose only non-zero component lies on the axis
func OnAxis(a Axis, v float64) Point {
	if a == Horizontal {
		return Point{X: v}
	}
	return Point{Y: v}
}

// Rect is an axis-aligned bounding box
type Rect struct {
	X, Y, Width, Height float64
}

// Start returns the leading coordinate of r on the axis
func (r Rect) Start(a Axis) float64 {
	if a == Horizontal {
		return r.X
	}
	return r.Y
}

// Size returns the length of r along the axis
func (r Rect) Size(a Axis) float64 {
	if a == Horizontal {
		return r.Width
	}
	return r.Height
}

// Contains reports whether p lies inside r (right and bottom edges excluded)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Area returns the area of r
func (r Rect) Area() float64 {
	return r.Width * r.Height
}
