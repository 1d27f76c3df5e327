//go:build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Backend names the implementation Extract runs on.
const Backend = "opencv"

// Extract isolates the camber stripe with OpenCV and returns its external
// contours.
//
// The steps mirror the pure Go build: BGR to HSV, InRange on the stripe
// band, MorphClose with a rectangular kernel, then FindContours with
// external retrieval and simple chain approximation.
func Extract(img image.Image) ([]Contour, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.NewScalar(HueMin, SatMin, ValMin, 0)
	upper := gocv.NewScalar(HueMax, SatMax, ValMax, 0)
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(CloseKernel, CloseKernel))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(mask, &closed, gocv.MorphClose, kernel)

	found := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		contours = append(contours, Contour(found.At(i).ToPoints()))
	}
	return contours, nil
}
