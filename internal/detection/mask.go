package detection

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Camber stripe color band in OpenCV HSV units (H 0-179, S and V 0-255).
const (
	HueMin = 20
	HueMax = 40
	SatMin = 100
	SatMax = 255
	ValMin = 100
	ValMax = 255

	// CloseKernel is the side of the square structuring element used to
	// bridge small gaps in the mask.
	CloseKernel = 5
)

// HSV is a color in OpenCV's 8-bit HSV convention.
type HSV struct {
	H int `json:"h"` // Hue: 0-179 (degrees / 2)
	S int `json:"s"` // Saturation: 0-255
	V int `json:"v"` // Value: 0-255
}

// ToHSV converts a color to OpenCV-scaled HSV.
//
// The second return value is false for fully transparent colors, which
// carry no usable hue.
func ToHSV(c color.Color) (HSV, bool) {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return HSV{}, false
	}
	h, s, v := cf.Hsv()
	hue := int(math.Round(h / 2))
	if hue >= 180 {
		hue -= 180
	}
	return HSV{
		H: hue,
		S: int(math.Round(s * 255)),
		V: int(math.Round(v * 255)),
	}, true
}

// InBand reports whether the color falls inside the camber stripe band.
func (c HSV) InBand() bool {
	return c.H >= HueMin && c.H <= HueMax &&
		c.S >= SatMin && c.S <= SatMax &&
		c.V >= ValMin && c.V <= ValMax
}

// Mask is a binary image with the same dimensions as its source.
//
// Coordinates are relative to the source image's bounds, so (0,0) is always
// the top-left pixel. A Mask is never modified after it is returned.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

func newMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At reports whether (x, y) is set. Out-of-range coordinates are unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

func (m *Mask) set(x, y int) {
	m.bits[y*m.Width+x] = true
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Image renders the mask as grayscale: 255 for set pixels, 0 otherwise.
func (m *Mask) Image() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, b := range m.bits {
		if b {
			g.Pix[i] = 255
		}
	}
	return g
}

// Segment marks every pixel whose color is inside the camber stripe band.
//
// No morphology is applied; see Close.
func Segment(img image.Image) *Mask {
	bounds := img.Bounds()
	m := newMask(bounds.Dx(), bounds.Dy())

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			hsv, ok := ToHSV(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if ok && hsv.InBand() {
				m.set(x, y)
			}
		}
	}
	return m
}

// Close applies a morphological closing (dilate, then erode) with a
// size×size square structuring element and returns the result.
//
// Pixels outside the mask never contribute: dilation treats them as unset
// and erosion treats them as set, so the closing does not eat into regions
// touching the image border.
func (m *Mask) Close(size int) *Mask {
	if size <= 1 {
		out := newMask(m.Width, m.Height)
		copy(out.bits, m.bits)
		return out
	}
	return m.morph(size, true).morph(size, false)
}

// morph runs a separable square dilation (dilate=true) or erosion.
func (m *Mask) morph(size int, dilate bool) *Mask {
	lo := (size - 1) / 2
	hi := size - 1 - lo

	// Horizontal pass.
	tmp := newMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tmp.bits[y*m.Width+x] = m.window(x-lo, x+hi, y, y, dilate)
		}
	}

	// Vertical pass.
	out := newMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.bits[y*m.Width+x] = tmp.window(x, x, y-lo, y+hi, dilate)
		}
	}
	return out
}

// window reduces the in-range pixels of [x0,x1]×[y0,y1] with OR (dilate)
// or AND (erode).
func (m *Mask) window(x0, x1, y0, y1 int, dilate bool) bool {
	x0, x1 = clamp(x0, 0, m.Width-1), clamp(x1, 0, m.Width-1)
	y0, y1 = clamp(y0, 0, m.Height-1), clamp(y1, 0, m.Height-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v := m.bits[y*m.Width+x]
			if dilate && v {
				return true
			}
			if !dilate && !v {
				return false
			}
		}
	}
	return !dilate
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
