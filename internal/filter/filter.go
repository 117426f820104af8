package filter

import (
	"log/slog"

	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
	"sigproc/internal/iir"
)

// Kind selects the filter response.
type Kind string

const (
	KindLowpass  Kind = "lowpass"
	KindHighpass Kind = "highpass"
)

// Params describes one filter request.
type Params struct {
	// Cutoff is the -3 dB corner frequency in Hz.
	Cutoff       float64
	SamplingRate float64
	// Channel restricts processing to a single named channel; empty means
	// all data channels.
	Channel string
}

// Engine designs and applies Butterworth filters of a fixed order.
type Engine struct {
	logger *slog.Logger
	order  int
}

// New creates a filter engine. A non-positive order falls back to 4, the
// standard order for this pipeline. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger, order int) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if order <= 0 {
		order = 4
	}
	return &Engine{logger: logger, order: order}
}

// Lowpass attenuates content above the cutoff frequency.
func (e *Engine) Lowpass(c *channels.Collection, p Params) (*channels.Collection, error) {
	return e.apply(c, p, KindLowpass)
}

// Highpass attenuates content below the cutoff frequency.
func (e *Engine) Highpass(c *channels.Collection, p Params) (*channels.Collection, error) {
	return e.apply(c, p, KindHighpass)
}

func (e *Engine) apply(c *channels.Collection, p Params, kind Kind) (*channels.Collection, error) {
	if c == nil {
		return nil, sperrors.Validation("no data to process")
	}

	cutoff, err := e.effectiveCutoff(p)
	if err != nil {
		return nil, err
	}

	var cascade iir.Cascade
	switch kind {
	case KindLowpass:
		cascade, err = iir.ButterworthLowpass(cutoff, e.order, p.SamplingRate)
	case KindHighpass:
		cascade, err = iir.ButterworthHighpass(cutoff, e.order, p.SamplingRate)
	default:
		return nil, sperrors.Validation("unknown filter kind: %s", kind)
	}
	if err != nil {
		return nil, sperrors.FilterDesign(err)
	}

	return c.Map(func(name string, samples []float64) ([]float64, error) {
		if p.Channel != "" && name != p.Channel {
			return samples, nil
		}
		return cascade.FiltFilt(samples), nil
	})
}

// effectiveCutoff validates the request and pulls a cutoff at or above
// the Nyquist frequency down to 99% of Nyquist, matching what the filter
// can actually realize.
func (e *Engine) effectiveCutoff(p Params) (float64, error) {
	if p.SamplingRate <= 0 {
		return 0, sperrors.Validation("sampling rate must be positive, got %g", p.SamplingRate)
	}
	if p.Cutoff <= 0 {
		return 0, sperrors.Validation("cutoff frequency must be positive, got %g", p.Cutoff)
	}
	nyquist := p.SamplingRate / 2
	if p.Cutoff >= nyquist {
		clamped := 0.99 * nyquist
		e.logger.Warn("cutoff_clamped",
			slog.Float64("requested_hz", p.Cutoff),
			slog.Float64("clamped_hz", clamped),
			slog.Float64("nyquist_hz", nyquist))
		return clamped, nil
	}
	return p.Cutoff, nil
}
