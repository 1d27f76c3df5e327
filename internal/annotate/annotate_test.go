package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/camber-tools-mcp/internal/curve"
)

var black = color.RGBA{0, 0, 0, 255}

func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	min := c.Image().Bounds().Min
	return c.Image().RGBAAt(x+min.X, y+min.Y)
}

func TestNewCanvas_CopiesSource(t *testing.T) {
	src := createTestImage(10, 10, black)
	c := NewCanvas(src)

	c.Line(image.Pt(0, 0), image.Pt(9, 9), CurveColor, 1)

	assert.Equal(t, CurveColor, rgbaAt(c, 5, 5))
	assert.Equal(t, black, src.RGBAAt(5, 5))
	assert.Equal(t, 10, c.Width())
	assert.Equal(t, 10, c.Height())
}

func TestCanvasLine_Thickness(t *testing.T) {
	c := NewCanvas(createTestImage(10, 10, black))
	c.Line(image.Pt(2, 5), image.Pt(8, 5), ChordColor, 2)

	for _, p := range []image.Point{{2, 4}, {2, 5}, {5, 4}, {5, 5}, {8, 4}, {8, 5}, {1, 5}} {
		assert.Equal(t, ChordColor, rgbaAt(c, p.X, p.Y), "pixel %v", p)
	}
	for _, p := range []image.Point{{5, 3}, {5, 6}, {9, 5}, {0, 5}} {
		assert.Equal(t, black, rgbaAt(c, p.X, p.Y), "pixel %v", p)
	}
}

func TestCanvasLine_Directions(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 image.Point
	}{
		{"left to right", image.Pt(1, 1), image.Pt(8, 6)},
		{"right to left", image.Pt(8, 6), image.Pt(1, 1)},
		{"vertical up", image.Pt(4, 9), image.Pt(4, 0)},
		{"single point", image.Pt(3, 3), image.Pt(3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(createTestImage(10, 10, black))
			c.Line(tt.p0, tt.p1, PerpendicularColor, 1)
			assert.Equal(t, PerpendicularColor, rgbaAt(c, tt.p0.X, tt.p0.Y))
			assert.Equal(t, PerpendicularColor, rgbaAt(c, tt.p1.X, tt.p1.Y))
		})
	}
}

func TestCanvasLine_Clips(t *testing.T) {
	c := NewCanvas(createTestImage(10, 10, black))

	assert.NotPanics(t, func() {
		c.Line(image.Pt(-5, -5), image.Pt(20, 20), CurveColor, 2)
		c.Line(image.Pt(-50, 3), image.Pt(-10, 3), CurveColor, 2)
	})
	assert.Equal(t, CurveColor, rgbaAt(c, 0, 0))
	assert.Equal(t, CurveColor, rgbaAt(c, 9, 9))
	assert.Equal(t, black, rgbaAt(c, 0, 9))
}

func TestCanvas_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 20, 20))
	c := NewCanvas(src)

	c.Line(image.Pt(0, 0), image.Pt(0, 0), LabelColor, 1)

	assert.Equal(t, LabelColor, rgbaAt(c, 0, 0))
	assert.Equal(t, color.RGBA{}, rgbaAt(c, 1, 1))
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(createTestImage(120, 40, black))
	c.Text(image.Pt(5, 20), "12.5%", LabelColor)

	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if rgbaAt(c, x, y) == LabelColor {
				lit++
				assert.True(t, x >= 5 && y <= 22, "stray text pixel at (%d,%d)", x, y)
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestCanvasText_Clips(t *testing.T) {
	c := NewCanvas(createTestImage(20, 20, black))
	assert.NotPanics(t, func() {
		c.Text(image.Pt(15, 5), "Depth/Chord: 99.9%", LabelColor)
		c.Text(image.Pt(-100, -100), "off", LabelColor)
	})
}

func TestLabels(t *testing.T) {
	got := Labels(curve.Measurement{ChordPosition: 50, DeviationRatio: 16.66667})
	assert.Equal(t, "50.0% along chord", got[0])
	assert.Equal(t, "Depth/Chord: 16.7%", got[1])

	got = Labels(curve.Measurement{})
	assert.Equal(t, "0.0% along chord", got[0])
	assert.Equal(t, "Depth/Chord: 0.0%", got[1])
}

func TestAnnotate(t *testing.T) {
	fc := curve.FittedCurve{{X: 10, Y: 50}, {X: 30, Y: 30}, {X: 50, Y: 20}, {X: 70, Y: 30}, {X: 90, Y: 50}}
	a, err := curve.Analyze(fc)
	require.NoError(t, err)
	require.Equal(t, curve.Point{X: 50, Y: 20}, a.Deviation)

	src := createTestImage(200, 100, black)
	c := NewCanvas(src)
	Annotate(c, fc, a)

	// Curve segment away from the chord, perpendicular and labels.
	assert.Equal(t, CurveColor, rgbaAt(c, 20, 40))
	// Chord endpoints overdraw the curve ends.
	assert.Equal(t, ChordColor, rgbaAt(c, 10, 50))
	assert.Equal(t, ChordColor, rgbaAt(c, 60, 50))
	// Perpendicular from (50,20) down to the chord at (50,50).
	assert.Equal(t, PerpendicularColor, rgbaAt(c, 50, 35))

	// Labels start at x = 70 around y = 35.
	lit := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if rgbaAt(c, x, y) == LabelColor {
				lit++
				assert.GreaterOrEqual(t, x, 70)
			}
		}
	}
	assert.Greater(t, lit, 0)

	assert.Equal(t, black, src.RGBAAt(50, 35))
}
