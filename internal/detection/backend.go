//go:build !gocv

package detection

import "image"

// Backend names the implementation Extract runs on.
const Backend = "go"

// Extract isolates the camber stripe and returns its external contours.
//
// It runs Segment, a CloseKernel×CloseKernel closing and FindContours. An
// image without stripe pixels yields no contours and no error.
func Extract(img image.Image) ([]Contour, error) {
	return FindContours(Segment(img).Close(CloseKernel)), nil
}
