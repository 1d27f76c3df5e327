package curve

import "math"

// Line is an infinite straight line in image space.
//
// Lines are one of three variants so vertical lines never carry an infinite
// slope into later arithmetic:
//   - Horizontal: y = Y
//   - Vertical:   x = X
//   - General:    y = Slope·x + Intercept, Slope ≠ 0
type Line interface {
	// Distance returns the perpendicular distance from p to the line.
	Distance(p Point) float64

	// Foot returns the foot of the perpendicular dropped from p.
	Foot(p Point) Point

	line()
}

// Horizontal is the line y = Y.
type Horizontal struct {
	Y float64
}

// Vertical is the line x = X.
type Vertical struct {
	X float64
}

// General is the line y = Slope·x + Intercept with a non-zero slope.
type General struct {
	Slope     float64
	Intercept float64
}

// NewLine returns the line through p1 and p2. Identical points yield a
// vertical line through them.
func NewLine(p1, p2 Point) Line {
	if p2.X == p1.X {
		return Vertical{X: p1.X}
	}
	m := (p2.Y - p1.Y) / (p2.X - p1.X)
	if m == 0 {
		return Horizontal{Y: p1.Y}
	}
	return General{Slope: m, Intercept: p1.Y - m*p1.X}
}

func (Horizontal) line() {}
func (Vertical) line()   {}
func (General) line()    {}

func (l Horizontal) Distance(p Point) float64 {
	return math.Abs(p.Y - l.Y)
}

func (l Horizontal) Foot(p Point) Point {
	return Point{X: p.X, Y: l.Y}
}

func (l Vertical) Distance(p Point) float64 {
	return math.Abs(p.X - l.X)
}

func (l Vertical) Foot(p Point) Point {
	return Point{X: l.X, Y: p.Y}
}

func (l General) Distance(p Point) float64 {
	return math.Abs(l.Slope*p.X-p.Y+l.Intercept) / math.Sqrt(l.Slope*l.Slope+1)
}

// Foot intersects the line with the perpendicular through p, whose slope
// is −1/Slope.
func (l General) Foot(p Point) Point {
	perpSlope := -1 / l.Slope
	perpIntercept := p.Y - perpSlope*p.X

	x := (perpIntercept - l.Intercept) / (l.Slope - perpSlope)
	return Point{X: x, Y: l.Slope*x + l.Intercept}
}

// distance is the Euclidean distance between two points.
func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
