package annotate

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGridColor is the grid line color when none is given.
var DefaultGridColor = color.RGBA{255, 0, 0, 255}

var (
	gridLabelColor      = color.RGBA{255, 255, 255, 255}
	gridLabelBackground = color.RGBA{0, 0, 0, 255}
)

// Grid draws 1 px lines every spacing pixels, starting at spacing, so a
// user can read pixel coordinates off the image. With labels set, each
// intersection gets an "x,y" tag just below and right of it.
func Grid(c *Canvas, spacing int, labels bool, col color.RGBA) error {
	if spacing < 1 {
		return fmt.Errorf("grid spacing must be positive, got %d", spacing)
	}
	w, h := c.Width(), c.Height()

	for x := spacing; x < w; x += spacing {
		c.Line(image.Pt(x, 0), image.Pt(x, h-1), col, 1)
	}
	for y := spacing; y < h; y += spacing {
		c.Line(image.Pt(0, y), image.Pt(w-1, y), col, 1)
	}

	if !labels {
		return nil
	}
	for y := spacing; y < h; y += spacing {
		for x := spacing; x < w; x += spacing {
			label := fmt.Sprintf("%d,%d", x, y)
			box := image.Rect(x+1, y+1, x+3+7*len(label), y+15)
			c.Fill(box, gridLabelBackground)
			c.Text(image.Pt(x+2, y+12), label, gridLabelColor)
		}
	}
	return nil
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var alpha uint64 = 255
	switch len(s) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = a
		s = s[:6]
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: want #RRGGBB or #RRGGBBAA", s)
	}

	cf, err := colorful.Hex("#" + s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}
