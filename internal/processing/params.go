package processing

import (
	"github.com/go-playground/validator/v10"

	sperrors "sigproc/internal/errors"
)

// Params is the flat per-call option set. Fields are grouped by the
// operations that read them; unrelated fields are ignored. Pointer
// fields distinguish "not supplied" from an explicit false.
type Params struct {
	// SamplingRate applies to every operation. Zero is backfilled from
	// the configured default before validation.
	SamplingRate float64
	// Channel restricts any operation to one named channel.
	Channel string

	// Trim.
	StartTime        float64
	EndTime          float64
	TrimMode         string
	NegativeStrategy string

	// Low-pass and high-pass filtering.
	Cutoff float64

	// Notch. NotchFrequency feeds the generic notch, PowerFrequency the
	// AC notch; both default from configuration when zero.
	NotchFrequency  float64
	PowerFrequency  float64
	QualityFactor   float64
	RemoveHarmonics *bool
	MaxHarmonic     int

	// Mains denoise presets.
	MainsRegion          string
	MainsCustomFrequency float64
	MainsStrength        string

	// Baseline correction.
	BaselineMethod   string
	FirstNSeconds    float64
	FitStartTime     float64
	FitEndTime       float64
	CorrectionMethod string
	PreserveMean     *bool
}

// Per-operation validation rules, checked after normalization.

type trimRules struct {
	StartTime float64 `validate:"gte=0"`
	EndTime   float64 `validate:"gtfield=StartTime"`
}

type filterRules struct {
	Cutoff  float64 `validate:"gt=0,ltfield=Nyquist"`
	Nyquist float64
}

type notchRules struct {
	Frequency     float64 `validate:"gt=0"`
	QualityFactor float64 `validate:"gt=0"`
}

type baselineRangeRules struct {
	FitStartTime float64 `validate:"gte=0"`
	FitEndTime   float64 `validate:"gtfield=FitStartTime"`
}

type baselineFirstNRules struct {
	FirstNSeconds float64 `validate:"gt=0"`
}

// validateParams rejects parameter sets an engine would choke on, with
// messages suitable for direct display.
func (d *Dispatcher) validateParams(op Operation, p Params) error {
	var (
		rules any
		deny  string
	)

	switch op {
	case OpTrim:
		rules = trimRules{StartTime: p.StartTime, EndTime: p.EndTime}
		deny = "trim requires 0 <= start_time < end_time"
	case OpLowpass, OpHighpass:
		rules = filterRules{Cutoff: p.Cutoff, Nyquist: p.SamplingRate / 2}
		deny = "cutoff frequency must be positive and below the Nyquist frequency"
	case OpNotch:
		rules = notchRules{Frequency: p.NotchFrequency, QualityFactor: p.QualityFactor}
		deny = "notch requires a positive frequency and quality factor"
	case OpACNotch:
		rules = notchRules{Frequency: p.PowerFrequency, QualityFactor: p.QualityFactor}
		deny = "ac notch requires a positive frequency and quality factor"
	case OpBaseline:
		if p.BaselineMethod == "first_n_seconds" {
			rules = baselineFirstNRules{FirstNSeconds: p.FirstNSeconds}
			deny = "baseline requires a positive first_n_seconds window"
		} else {
			rules = baselineRangeRules{FitStartTime: p.FitStartTime, FitEndTime: p.FitEndTime}
			deny = "baseline requires 0 <= fit_start_time < fit_end_time"
		}
	default:
		return nil
	}

	if err := d.validate.Struct(rules); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return sperrors.Validation("%s", deny)
		}
		return sperrors.Internal(err)
	}
	return nil
}

// normalize backfills configured defaults into unset fields. Explicitly
// supplied out-of-range values are left alone for validation to reject.
func (d *Dispatcher) normalize(p *Params) {
	cfg := d.cfg.Processing
	if p.SamplingRate == 0 {
		p.SamplingRate = cfg.DefaultSamplingRate
	}
	if p.NotchFrequency == 0 {
		p.NotchFrequency = cfg.NotchFrequency
	}
	if p.PowerFrequency == 0 {
		p.PowerFrequency = cfg.PowerFrequency
	}
	if p.QualityFactor == 0 {
		p.QualityFactor = cfg.QualityFactor
	}
	if p.MaxHarmonic == 0 {
		p.MaxHarmonic = cfg.MaxHarmonic
	}
	if p.FirstNSeconds == 0 {
		p.FirstNSeconds = cfg.FirstNSeconds
	}
	if p.RemoveHarmonics == nil {
		p.RemoveHarmonics = boolPtr(true)
	}
	if p.PreserveMean == nil {
		p.PreserveMean = boolPtr(true)
	}
	if p.CorrectionMethod == "" {
		p.CorrectionMethod = "linear"
	}
}

func boolPtr(v bool) *bool {
	return &v
}
