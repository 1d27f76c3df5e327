package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/camber-tools-mcp/internal/detection"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents an RGBA color with 8-bit components including alpha
// (0 = fully transparent, 255 = fully opaque).
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains one pixel's color in several representations.
//
// HSV uses the same 8-bit convention as segmentation (H 0-179, S and V
// 0-255) and is omitted for fully transparent pixels. InCamberBand reports
// whether segmentation would mark the pixel as stripe.
type ColorResult struct {
	Hex          string         `json:"hex"`
	RGB          RGBColor       `json:"rgb"`
	RGBA         RGBAColor      `json:"rgba"`
	HSL          HSLColor       `json:"hsl"`
	HSV          *detection.HSV `json:"hsv,omitempty"`
	InCamberBand bool           `json:"in_camber_band"`
}

// SampleColor returns the color at pixel (x, y).
//
// Coordinates are absolute image coordinates; an error is returned when
// they fall outside the image bounds. 16-bit channels are reduced to 8 bits
// by dropping the low byte. Hex excludes alpha.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := img.At(x, y)
	r, g, b, a := c.RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	result := &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  toHSL(r8, g8, b8),
	}
	if hsv, ok := detection.ToHSV(c); ok {
		result.HSV = &hsv
		result.InCamberBand = hsv.InBand()
	}
	return result, nil
}

func toHSL(r, g, b uint8) HSLColor {
	cf := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := cf.Hsl()
	hue := int(math.Round(h))
	if hue >= 360 {
		hue -= 360
	}
	return HSLColor{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
