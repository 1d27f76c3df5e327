package annotate

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is the single writable copy of the image being analysed.
//
// A Canvas belongs to exactly one pipeline run. It is not safe for
// concurrent use; nothing else reads it until the run has finished drawing.
// Drawing coordinates are relative to the source image's bounds, matching
// mask and contour coordinates, and everything drawn is clipped.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas copies src into a new RGBA canvas. src is never modified.
func NewCanvas(src image.Image) *Canvas {
	return &Canvas{img: clone.AsRGBA(src)}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	min := c.img.Bounds().Min
	p := image.Pt(x+min.X, y+min.Y)
	if p.In(c.img.Bounds()) {
		c.img.SetRGBA(p.X, p.Y, col)
	}
}

// Line draws a straight segment from p0 to p1 using Bresenham's algorithm,
// stamping a thickness×thickness square at every step.
func (c *Canvas) Line(p0, p1 image.Point, col color.RGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	lo := -(thickness / 2)
	hi := lo + thickness - 1

	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}

	x, y := p0.X, p0.Y
	e := dx + dy
	for {
		for oy := lo; oy <= hi; oy++ {
			for ox := lo; ox <= hi; ox++ {
				c.set(x+ox, y+oy, col)
			}
		}
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// Fill paints every pixel of r, clipped to the canvas.
func (c *Canvas) Fill(r image.Rectangle, col color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.set(x, y, col)
		}
	}
}

// Polyline joins consecutive points with segments.
func (c *Canvas) Polyline(pts []image.Point, col color.RGBA, thickness int) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], col, thickness)
	}
}

// Text draws s with its baseline starting at origin, using the 7×13 basic
// font. The string is drawn twice, one pixel apart, to thicken the strokes.
func (c *Canvas) Text(origin image.Point, s string, col color.RGBA) {
	min := c.img.Bounds().Min
	for dx := 0; dx <= 1; dx++ {
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(col),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(origin.X+min.X+dx, origin.Y+min.Y),
		}
		d.DrawString(s)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
