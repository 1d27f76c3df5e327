package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/camber-tools-mcp/internal/detection"
)

func TestSampleColor(t *testing.T) {
	tests := []struct {
		name   string
		c      color.Color
		hex    string
		hsl    HSLColor
		hsv    *detection.HSV
		inBand bool
	}{
		{"camber yellow", color.RGBA{255, 220, 0, 255}, "#FFDC00", HSLColor{52, 100, 50}, &detection.HSV{H: 26, S: 255, V: 255}, true},
		{"red", color.RGBA{255, 0, 0, 255}, "#FF0000", HSLColor{0, 100, 50}, &detection.HSV{H: 0, S: 255, V: 255}, false},
		{"blue", color.RGBA{0, 0, 255, 255}, "#0000FF", HSLColor{240, 100, 50}, &detection.HSV{H: 120, S: 255, V: 255}, false},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", HSLColor{0, 0, 100}, &detection.HSV{H: 0, S: 0, V: 255}, false},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", HSLColor{0, 0, 0}, &detection.HSV{H: 0, S: 0, V: 0}, false},
		{"transparent", color.RGBA{0, 0, 0, 0}, "#000000", HSLColor{0, 0, 0}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := fillImage(4, 4, tt.c)

			got, err := SampleColor(img, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, got.Hex)
			assert.Equal(t, tt.hsl, got.HSL)
			assert.Equal(t, tt.hsv, got.HSV)
			assert.Equal(t, tt.inBand, got.InCamberBand)
		})
	}
}

func TestSampleColor_Components(t *testing.T) {
	img := fillImage(2, 2, color.NRGBA{255, 128, 64, 255})

	got, err := SampleColor(img, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, RGBColor{R: 255, G: 128, B: 64}, got.RGB)
	assert.Equal(t, RGBAColor{R: 255, G: 128, B: 64, A: 255}, got.RGBA)
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := fillImage(10, 10, color.White)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {100, 100}} {
		_, err := SampleColor(img, p.X, p.Y)
		assert.Error(t, err, "point %v", p)
	}
	for _, p := range []image.Point{{0, 0}, {9, 0}, {0, 9}, {9, 9}} {
		_, err := SampleColor(img, p.X, p.Y)
		assert.NoError(t, err, "point %v", p)
	}
}

func TestSampleColor_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(50, 50, 60, 60))
	img.Set(55, 55, color.RGBA{255, 220, 0, 255})

	got, err := SampleColor(img, 55, 55)
	require.NoError(t, err)
	assert.True(t, got.InCamberBand)

	_, err = SampleColor(img, 0, 0)
	assert.Error(t, err)
}
