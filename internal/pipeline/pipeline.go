// Package pipeline runs camber analysis end to end: load an image, extract
// the stripe, fit and measure each contour, draw the result and write the
// annotated copy.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ironsheep/camber-tools-mcp/internal/annotate"
	"github.com/ironsheep/camber-tools-mcp/internal/curve"
	"github.com/ironsheep/camber-tools-mcp/internal/detection"
	"github.com/ironsheep/camber-tools-mcp/internal/imaging"
)

const tracerName = "github.com/ironsheep/camber-tools-mcp/internal/pipeline"

// LoadError reports an input that could not be read or decoded. Nothing is
// written for such an input.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ContourStatus is the outcome of one contour.
type ContourStatus string

const (
	StatusMeasured     ContourStatus = "measured"
	StatusTooFewPoints ContourStatus = "too_few_points"
	StatusDegenerate   ContourStatus = "degenerate"
	StatusFitFailed    ContourStatus = "fit_failed"
)

// ContourReport records what happened to one extracted contour.
type ContourReport struct {
	Index  int           `json:"index"`
	Points int           `json:"points"`
	Status ContourStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`

	// Set only for measured contours.
	Measurement *curve.Measurement `json:"measurement,omitempty"`
	ChordLength float64            `json:"chord_length,omitempty"`
	ArcLength   float64            `json:"arc_length,omitempty"`
}

// Annotated is the in-memory outcome of analysing one image.
type Annotated struct {
	Image *image.RGBA

	// Measurement is that of the last measured contour in extraction order.
	// HasMeasurement is false when no contour was measured.
	Measurement    curve.Measurement
	HasMeasurement bool

	Contours []ContourReport
}

// Result describes one completed Process call.
type Result struct {
	RunID          string            `json:"run_id"`
	InputPath      string            `json:"input_path"`
	OutputPath     string            `json:"output_path"`
	Backend        string            `json:"backend"`
	Measurement    curve.Measurement `json:"measurement"`
	HasMeasurement bool              `json:"has_measurement"`
	Contours       []ContourReport   `json:"contours"`
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProcessedDir sets the sibling directory annotated images are written
// to. The default is imaging.DefaultProcessedDir.
func WithProcessedDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.processedDir = dir
		}
	}
}

// WithTracerProvider replaces the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		p.tracer = tp.Tracer(tracerName)
	}
}

// Pipeline runs analyses. It holds only settings, so one Pipeline may serve
// concurrent calls; every call works on its own copy of its image.
type Pipeline struct {
	log          zerolog.Logger
	processedDir string
	tracer       trace.Tracer
}

// New returns a Pipeline logging to logger.
func New(logger zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		log:          logger.With().Str("component", "pipeline").Logger(),
		processedDir: imaging.DefaultProcessedDir,
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OutputPath returns where Process writes the annotated copy of input.
func (p *Pipeline) OutputPath(input string) string {
	return imaging.ProcessedPath(input, p.processedDir)
}

// Process analyses the image at path and writes the annotated copy to
// OutputPath(path).
//
// A file that cannot be read or decoded returns a *LoadError. Contours too
// short to fit are skipped silently and contours with degenerate geometry
// are skipped with a warning; neither fails the call. An image without any
// stripe is written back unchanged.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Str("input", path).Logger()

	ctx, span := p.tracer.Start(ctx, "pipeline.process", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("input", path),
	))
	defer span.End()

	img, err := imaging.Open(path)
	if err != nil {
		lerr := &LoadError{Path: path, Err: err}
		span.RecordError(lerr)
		span.SetStatus(codes.Error, "load failed")
		log.Error().Err(err).Msg("cannot load image")
		return nil, lerr
	}

	ann, err := p.analyze(ctx, log, img)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		return nil, err
	}

	out := p.OutputPath(path)
	if err := imaging.Save(ann.Image, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return nil, fmt.Errorf("failed to write annotated image for %s: %w", path, err)
	}

	ev := log.Info().
		Str("output", out).
		Int("contours", len(ann.Contours)).
		Bool("measured", ann.HasMeasurement)
	if ann.HasMeasurement {
		ev = ev.
			Float64("chord_position", ann.Measurement.ChordPosition).
			Float64("deviation_ratio", ann.Measurement.DeviationRatio)
		span.SetAttributes(
			attribute.Float64("chord_position", ann.Measurement.ChordPosition),
			attribute.Float64("deviation_ratio", ann.Measurement.DeviationRatio),
		)
	}
	ev.Msg("image processed")

	return &Result{
		RunID:          runID,
		InputPath:      path,
		OutputPath:     out,
		Backend:        detection.Backend,
		Measurement:    ann.Measurement,
		HasMeasurement: ann.HasMeasurement,
		Contours:       ann.Contours,
	}, nil
}

// ProcessImage runs the analysis on an image already in memory. img is not
// modified; the annotations are drawn on a copy.
func (p *Pipeline) ProcessImage(ctx context.Context, img image.Image) (*Annotated, error) {
	return p.analyze(ctx, p.log, img)
}

func (p *Pipeline) analyze(ctx context.Context, log zerolog.Logger, img image.Image) (*Annotated, error) {
	_, span := p.tracer.Start(ctx, "pipeline.extract")
	contours, err := detection.Extract(img)
	span.SetAttributes(attribute.Int("contours", len(contours)))
	span.End()
	if err != nil {
		return nil, fmt.Errorf("failed to extract contours: %w", err)
	}
	log.Debug().Int("contours", len(contours)).Str("backend", detection.Backend).Msg("stripe extracted")

	ctx, span = p.tracer.Start(ctx, "pipeline.analyze")
	defer span.End()

	canvas := annotate.NewCanvas(img)
	ann := &Annotated{Contours: make([]ContourReport, 0, len(contours))}

	for i, c := range contours {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clog := log.With().Int("contour", i).Int("points", len(c)).Logger()
		report := ContourReport{Index: i, Points: len(c)}

		fc, err := curve.Fit(c, canvas.Width(), canvas.Height())
		switch {
		case errors.Is(err, curve.ErrTooFewPoints):
			clog.Debug().Msg("contour skipped: too few points")
			report.Status = StatusTooFewPoints
			ann.Contours = append(ann.Contours, report)
			continue
		case err != nil:
			clog.Warn().Err(err).Msg("contour skipped: fit failed")
			report.Status = StatusFitFailed
			report.Reason = err.Error()
			ann.Contours = append(ann.Contours, report)
			continue
		}

		a, err := curve.Analyze(fc)
		if err != nil {
			clog.Warn().Err(err).Msg("contour skipped: degenerate geometry")
			report.Status = StatusDegenerate
			report.Reason = err.Error()
			ann.Contours = append(ann.Contours, report)
			continue
		}

		annotate.Annotate(canvas, fc, a)

		m := a.Measurement
		report.Status = StatusMeasured
		report.Measurement = &m
		report.ChordLength = a.ChordLength
		report.ArcLength = a.ArcLength
		ann.Contours = append(ann.Contours, report)

		ann.Measurement = m
		ann.HasMeasurement = true

		clog.Debug().
			Float64("chord_position", m.ChordPosition).
			Float64("deviation_ratio", m.DeviationRatio).
			Msg("contour measured")
	}

	span.SetAttributes(attribute.Bool("measured", ann.HasMeasurement))
	ann.Image = canvas.Image()
	return ann, nil
}
