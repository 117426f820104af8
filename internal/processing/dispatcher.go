package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"sigproc/internal/baseline"
	"sigproc/internal/channels"
	"sigproc/internal/config"
	sperrors "sigproc/internal/errors"
	"sigproc/internal/filter"
	"sigproc/internal/notch"
	"sigproc/internal/trim"
)

// Dispatcher validates processing requests, routes them to the matching
// engine, and normalizes results for callers.
type Dispatcher struct {
	logger   *slog.Logger
	cfg      *config.Config
	validate *validator.Validate
	tracer   *tracer

	trim     *trim.Engine
	filter   *filter.Engine
	notch    *notch.Engine
	baseline *baseline.Engine
}

// Option tweaks dispatcher construction.
type Option func(*options)

type options struct {
	trimSource rand.Source
}

// WithTrimSource injects the random source behind smart-fill, making
// fills reproducible.
func WithTrimSource(src rand.Source) Option {
	return func(o *options) {
		o.trimSource = src
	}
}

// New creates a dispatcher wired to fresh engine instances. A nil logger
// falls back to slog.Default(); a nil config falls back to the built-in
// defaults.
func New(logger *slog.Logger, cfg *config.Config, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	trimCfg := trim.Config{
		EdgeWindow: cfg.Processing.SmartFillWindow,
		StdFloor:   cfg.Processing.SmartFillStdFloor,
		Source:     o.trimSource,
	}

	return &Dispatcher{
		logger:   logger,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   newTracer(),
		trim:     trim.New(logger, trimCfg),
		filter:   filter.New(logger, cfg.Processing.FilterOrder),
		notch:    notch.New(logger),
		baseline: baseline.New(logger),
	}
}

// Process runs one operation over the collection and reports the outcome
// as (ok, result, message). The message is always non-empty and suitable
// for direct display. ref is the optional externally tracked time axis.
//
// Engines never see invalid parameters, and callers never see a partial
// result: on any failure the input collection is returned untouched as
// (false, nil, reason). Non-finite samples in a successful result are
// replaced before it is returned.
func (d *Dispatcher) Process(ctx context.Context, c *channels.Collection, opName string, p Params, ref []float64) (bool, *channels.Collection, string) {
	opID := uuid.NewString()
	started := time.Now()

	op, known := ParseOperation(opName)
	if !known {
		msg := fmt.Sprintf("Unknown operation: %s", opName)
		d.logProcessingError(ctx, opID, opName, sperrors.UnknownOperation(opName))
		return false, nil, msg
	}
	if c == nil {
		d.logProcessingError(ctx, opID, opName, sperrors.Validation("nil collection"))
		return false, nil, "No data to process"
	}

	d.normalize(&p)
	if err := d.validateParams(op, p); err != nil {
		d.logProcessingError(ctx, opID, opName, err)
		return false, nil, err.Error()
	}

	ctx, span := d.tracer.start(ctx, op, opID)
	defer span.End()
	d.logProcessingStart(ctx, opID, op, p)

	result, err := d.route(c, op, p, ref)
	duration := time.Since(started)
	d.tracer.record(ctx, span, op, err, duration)

	if err != nil {
		d.logProcessingError(ctx, opID, opName, err)
		return false, nil, err.Error()
	}

	channels.ReplaceNonFinite(result)
	msg := statusMessage(op, result)
	d.logProcessingComplete(ctx, opID, op, duration, result)
	return true, result, msg
}

// route calls the engine for the operation, converting panics into
// internal errors so no failure escapes the dispatcher boundary.
func (d *Dispatcher) route(c *channels.Collection, op Operation, p Params, ref []float64) (result *channels.Collection, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = sperrors.Internal(fmt.Errorf("processing panicked: %v", r))
		}
	}()

	switch op {
	case OpTrim:
		return d.trim.Process(c, trim.Params{
			StartTime:    p.StartTime,
			EndTime:      p.EndTime,
			SamplingRate: p.SamplingRate,
			Channel:      p.Channel,
			Mode:         trim.Mode(p.TrimMode),
			Strategy:     trim.Strategy(p.NegativeStrategy),
		}, ref)

	case OpLowpass:
		return d.filter.Lowpass(c, filter.Params{
			Cutoff:       p.Cutoff,
			SamplingRate: p.SamplingRate,
			Channel:      p.Channel,
		})

	case OpHighpass:
		return d.filter.Highpass(c, filter.Params{
			Cutoff:       p.Cutoff,
			SamplingRate: p.SamplingRate,
			Channel:      p.Channel,
		})

	case OpNotch:
		return d.notch.Process(c, notch.Params{
			Frequency:       p.NotchFrequency,
			QualityFactor:   p.QualityFactor,
			RemoveHarmonics: *p.RemoveHarmonics,
			MaxHarmonic:     p.MaxHarmonic,
			SamplingRate:    p.SamplingRate,
			Channel:         p.Channel,
		})

	case OpACNotch:
		return d.notch.Process(c, notch.Params{
			Frequency:       p.PowerFrequency,
			QualityFactor:   p.QualityFactor,
			RemoveHarmonics: *p.RemoveHarmonics,
			MaxHarmonic:     p.MaxHarmonic,
			SamplingRate:    p.SamplingRate,
			Channel:         p.Channel,
		})

	case OpMainsDenoise:
		return d.notch.MainsDenoise(c, notch.MainsParams{
			Region:          notch.Region(p.MainsRegion),
			CustomFrequency: p.MainsCustomFrequency,
			Strength:        notch.Strength(p.MainsStrength),
			SamplingRate:    p.SamplingRate,
			Channel:         p.Channel,
		})

	case OpBaseline:
		return d.baseline.Process(c, baseline.Params{
			Method:        baseline.Method(p.BaselineMethod),
			FirstNSeconds: p.FirstNSeconds,
			FitStartTime:  p.FitStartTime,
			FitEndTime:    p.FitEndTime,
			Correction:    baseline.Correction(p.CorrectionMethod),
			PreserveMean:  *p.PreserveMean,
			SamplingRate:  p.SamplingRate,
			Channel:       p.Channel,
		}, ref)

	default:
		return nil, sperrors.UnknownOperation(string(op))
	}
}

// statusMessage builds the caller-facing success line. Trim reports the
// actual retained range so users can confirm what the clamped indices
// selected.
func statusMessage(op Operation, c *channels.Collection) string {
	if op != OpTrim {
		return "Processing successful"
	}
	axis, ok := c.Channel(channels.TimeChannel)
	if !ok || len(axis) == 0 {
		return "Processing successful"
	}
	return fmt.Sprintf("trim successful: time range %.3fs - %.3fs (%d points)",
		axis[0], axis[len(axis)-1], len(axis))
}
