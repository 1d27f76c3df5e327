package curve

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateGeometry is returned when a curve's chord has zero length or
// the perpendicular foot cannot be computed.
var ErrDegenerateGeometry = errors.New("degenerate curve geometry")

// tieTolerance is the distance, in pixels, below which two deviations count
// as equal. The earlier point wins a tie.
const tieTolerance = 1e-9

// Measurement holds the two camber percentages of one curve.
type Measurement struct {
	// ChordPosition is where the perpendicular meets the chord, as a
	// percentage of chord length measured from the chord's first endpoint.
	ChordPosition float64 `json:"chord_position"`

	// DeviationRatio is the perpendicular's length as a percentage of the
	// chord length.
	DeviationRatio float64 `json:"deviation_ratio"`
}

// Analysis is the geometric decomposition of a FittedCurve against its chord.
type Analysis struct {
	Start Point `json:"start"` // first curve point, chord endpoint 1
	End   Point `json:"end"`   // last curve point, chord endpoint 2

	// Chord is the infinite line through Start and End.
	Chord Line `json:"-"`

	// DeviationIndex is the index of Deviation in the curve.
	DeviationIndex int   `json:"deviation_index"`
	Deviation      Point `json:"deviation"`

	// Intersection is the foot of the perpendicular from Deviation.
	Intersection Point `json:"intersection"`

	ChordLength          float64 `json:"chord_length"`
	IntersectionDistance float64 `json:"intersection_distance"`
	PerpLength           float64 `json:"perp_length"`

	// ArcLength is the summed segment length of the curve.
	ArcLength float64 `json:"arc_length"`

	Measurement Measurement `json:"measurement"`
}

// Analyze derives the chord, the point of maximum deviation from it, the
// perpendicular foot and the resulting percentages for one curve.
//
// Steps:
//  1. The chord joins the curve's first and last points.
//  2. Every point's perpendicular distance to the chord is measured; the
//     largest wins, with ties going to the lowest index.
//  3. The perpendicular from that point meets the chord's infinite
//     extension at the intersection.
//  4. ChordPosition = 100·|Start→Intersection| / |chord| and
//     DeviationRatio = 100·|Deviation→Intersection| / |chord|.
//
// A zero-length chord, or an intersection that is not finite, returns an
// error wrapping ErrDegenerateGeometry.
func Analyze(fc FittedCurve) (Analysis, error) {
	if len(fc) < 2 {
		return Analysis{}, fmt.Errorf("%w: curve has %d points", ErrDegenerateGeometry, len(fc))
	}

	a := Analysis{Start: fc[0], End: fc[len(fc)-1]}
	a.ChordLength = distance(a.Start, a.End)
	if a.ChordLength == 0 {
		return Analysis{}, fmt.Errorf("%w: zero-length chord at (%.1f,%.1f)", ErrDegenerateGeometry, a.Start.X, a.Start.Y)
	}
	a.Chord = NewLine(a.Start, a.End)

	best := -1.0
	for i, p := range fc {
		if d := a.Chord.Distance(p); d > best+tieTolerance {
			best = d
			a.DeviationIndex = i
		}
	}
	a.Deviation = fc[a.DeviationIndex]

	a.Intersection = a.Chord.Foot(a.Deviation)
	if !finite(a.Intersection.X) || !finite(a.Intersection.Y) {
		return Analysis{}, fmt.Errorf("%w: perpendicular does not meet chord", ErrDegenerateGeometry)
	}

	a.IntersectionDistance = distance(a.Start, a.Intersection)
	a.PerpLength = distance(a.Deviation, a.Intersection)
	a.ArcLength = ArcLength(fc)
	a.Measurement = Measurement{
		ChordPosition:  100 * a.IntersectionDistance / a.ChordLength,
		DeviationRatio: 100 * a.PerpLength / a.ChordLength,
	}

	return a, nil
}

// ArcLength sums the lengths of consecutive curve segments.
func ArcLength(fc FittedCurve) float64 {
	total := 0.0
	for i := 1; i < len(fc); i++ {
		total += distance(fc[i-1], fc[i])
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
