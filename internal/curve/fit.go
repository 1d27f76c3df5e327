package curve

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// MinContourPoints is the shortest contour a cubic is fitted to.
	MinContourPoints = 5

	// Degree of the polynomial fitted to each contour.
	Degree = 3

	// Samples is the number of points in every FittedCurve.
	Samples = 1000
)

// ErrTooFewPoints is returned by Fit for contours shorter than
// MinContourPoints. It marks a skipped contour, not a failure.
var ErrTooFewPoints = errors.New("contour has too few points to fit")

// Point is a position in image space with sub-pixel precision.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FittedCurve is a dense polyline sampled from a fitted polynomial.
// X never decreases along the curve.
type FittedCurve []Point

// Polynomial is y = Σ Coeffs[i]·tⁱ with t = (x − Shift) / Scale.
//
// Fitting in the normalised variable t keeps the Vandermonde matrix well
// conditioned for pixel coordinates in the thousands.
type Polynomial struct {
	Coeffs []float64
	Shift  float64
	Scale  float64
}

// Eval evaluates the polynomial at x using Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	t := (x - p.Shift) / p.Scale
	y := 0.0
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = y*t + p.Coeffs[i]
	}
	return y
}

// Degree returns the degree actually fitted.
func (p Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// FitPolynomial fits y = f(x) of the given degree by least squares,
// minimising vertical residuals.
//
// When the samples have fewer than degree+1 distinct x values the degree is
// lowered to (distinct − 1). The lower-degree fit takes the same values at
// the sampled x positions as any least-squares solution of the requested
// degree would.
func FitPolynomial(xs, ys []float64, degree int) (Polynomial, error) {
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("mismatched sample lengths: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return Polynomial{}, fmt.Errorf("no samples to fit")
	}
	if degree < 0 {
		return Polynomial{}, fmt.Errorf("invalid degree %d", degree)
	}

	shift := floats.Sum(xs) / float64(len(xs))
	scale := 0.0
	distinct := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		scale = math.Max(scale, math.Abs(x-shift))
		distinct[x] = struct{}{}
	}
	if scale == 0 {
		scale = 1
	}
	if degree > len(distinct)-1 {
		degree = len(distinct) - 1
	}

	b := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	for ; degree >= 0; degree-- {
		a := mat.NewDense(len(xs), degree+1, nil)
		for i, x := range xs {
			t := (x - shift) / scale
			v := 1.0
			for j := 0; j <= degree; j++ {
				a.Set(i, j, v)
				v *= t
			}
		}

		var qr mat.QR
		qr.Factorize(a)

		sol := mat.NewDense(degree+1, 1, nil)
		if err := qr.SolveTo(sol, false, b); err != nil {
			// Ill-conditioned at this degree; retry one lower.
			continue
		}

		coeffs := make([]float64, degree+1)
		for j := range coeffs {
			coeffs[j] = sol.At(j, 0)
		}
		return Polynomial{Coeffs: coeffs, Shift: shift, Scale: scale}, nil
	}

	return Polynomial{}, fmt.Errorf("least squares fit failed for %d samples", len(xs))
}

// Fit fits a cubic through a contour's pixels and resamples it.
//
// The contour is treated as an unordered point set: the cubic minimises
// vertical residuals over every (x, y) pair, and is evaluated at Samples
// evenly spaced x values spanning the contour's x range. Both coordinates
// are clamped to the width×height image so extrapolation near the edges
// cannot leave the image.
//
// Contours shorter than MinContourPoints return ErrTooFewPoints.
func Fit(contour []image.Point, width, height int) (FittedCurve, error) {
	if len(contour) < MinContourPoints {
		return nil, fmt.Errorf("%w: %d < %d", ErrTooFewPoints, len(contour), MinContourPoints)
	}

	xs := make([]float64, len(contour))
	ys := make([]float64, len(contour))
	for i, p := range contour {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}

	poly, err := FitPolynomial(xs, ys, Degree)
	if err != nil {
		return nil, fmt.Errorf("failed to fit contour: %w", err)
	}

	grid := floats.Span(make([]float64, Samples), floats.Min(xs), floats.Max(xs))

	fitted := make(FittedCurve, Samples)
	for i, x := range grid {
		fitted[i] = Point{
			X: clampFloat(x, 0, float64(width-1)),
			Y: clampFloat(poly.Eval(x), 0, float64(height-1)),
		}
	}
	return fitted, nil
}

// clampFloat constrains v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
