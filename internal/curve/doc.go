// Package curve fits a smooth curve to a stripe contour and measures how far
// it bows away from the straight chord between its ends.
//
// Fit treats a contour as a cloud of pixels and regresses y on x with a
// cubic. This is an approximation: a closed contour has two y values for
// most x, so the cubic runs through the middle of the stripe rather than
// along either edge. The result is resampled at 1000 evenly spaced x values.
//
// Analyze reduces a FittedCurve to a Measurement:
//
//	            Deviation
//	               *
//	          *    |    *
//	     *         |         *
//	Start *--------+---------* End
//	          Intersection
//
// ChordPosition is |Start→Intersection| as a percentage of |Start→End| and
// DeviationRatio is |Deviation→Intersection| as a percentage of the same.
package curve
