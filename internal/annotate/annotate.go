// Package annotate draws a camber analysis onto the image it came from.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/camber-tools-mcp/internal/curve"
)

// Annotation colors.
var (
	CurveColor         = color.RGBA{255, 0, 0, 255}     // fitted curve
	ChordColor         = color.RGBA{0, 255, 0, 255}     // chord between curve ends
	PerpendicularColor = color.RGBA{0, 0, 255, 255}     // deviation to chord
	LabelColor         = color.RGBA{255, 255, 255, 255} // measurement text
)

const (
	lineThickness = 2

	// Labels start this far right of the perpendicular and sit this far
	// above and below its midpoint.
	labelOffsetX = 20
	labelOffsetY = 10
)

// Labels formats a measurement as the two lines drawn next to the
// perpendicular.
func Labels(m curve.Measurement) [2]string {
	return [2]string{
		fmt.Sprintf("%.1f%% along chord", m.ChordPosition),
		fmt.Sprintf("Depth/Chord: %.1f%%", m.DeviationRatio),
	}
}

// Annotate draws the fitted curve, its chord, the perpendicular from the
// deviation point and the measurement labels, in that order. Later strokes
// cover earlier ones where they overlap.
func Annotate(c *Canvas, fc curve.FittedCurve, a curve.Analysis) {
	pts := make([]image.Point, len(fc))
	for i, p := range fc {
		pts[i] = pixel(p)
	}
	c.Polyline(pts, CurveColor, lineThickness)
	c.Line(pixel(a.Start), pixel(a.End), ChordColor, lineThickness)
	c.Line(pixel(a.Deviation), pixel(a.Intersection), PerpendicularColor, lineThickness)

	x := int(math.Max(a.Intersection.X, a.Deviation.X) + labelOffsetX)
	y := int((a.Intersection.Y + a.Deviation.Y) / 2)
	labels := Labels(a.Measurement)
	c.Text(image.Pt(x, y-labelOffsetY), labels[0], LabelColor)
	c.Text(image.Pt(x, y+labelOffsetY), labels[1], LabelColor)
}

// pixel truncates a point toward zero.
func pixel(p curve.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}
