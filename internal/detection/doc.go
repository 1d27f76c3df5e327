// Package detection isolates the camber stripe in an image and extracts the
// boundaries of the regions it covers.
//
// # Segmentation
//
// Each pixel is converted to HSV using OpenCV's 8-bit convention (hue 0-179,
// saturation and value 0-255). A pixel belongs to the stripe when its hue is
// in [HueMin, HueMax] and both saturation and value are at least 100. The
// band is fixed; nothing here is tuned per image.
//
// The raw mask is then closed (dilate, then erode) with a 5×5 square so that
// noise and small occlusions do not split the stripe into pieces.
//
// # Contours
//
// FindContours reports one boundary per 8-connected region of the mask,
// ignoring regions nested inside holes of other regions. Boundaries are
// compressed to the points where their direction changes, which keeps long
// straight edges down to two points.
//
// # Backends
//
// The default build is pure Go. Building with -tags gocv routes Extract
// through OpenCV (gocv.io/x/gocv), which requires OpenCV 4 to be installed.
// Segment, Close and FindContours are always the pure Go versions.
//
// # Coordinate System
//
// Mask and contour coordinates are relative to the source image's bounds:
// (0,0) is the top-left pixel, X grows rightward and Y downward.
package detection
