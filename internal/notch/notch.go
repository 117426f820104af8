package notch

import (
	"log/slog"

	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
	"sigproc/internal/iir"
)

// harmonicGuard keeps harmonic notches comfortably below Nyquist; a
// notch designed right at the limit is numerically useless. The
// fundamental is never guarded, only its multiples.
const harmonicGuard = 0.95

// Params describes one notch request.
type Params struct {
	// Frequency is the fundamental frequency to remove, in Hz.
	Frequency float64
	// QualityFactor controls the notch width. Higher is narrower.
	QualityFactor float64
	// RemoveHarmonics also notches integer multiples of the fundamental.
	RemoveHarmonics bool
	// MaxHarmonic is the highest harmonic multiple to remove when
	// RemoveHarmonics is set. Non-positive falls back to 5.
	MaxHarmonic  int
	SamplingRate float64
	// Channel restricts processing to a single named channel; empty means
	// all data channels.
	Channel string
}

// Engine applies notch filters to channel collections.
type Engine struct {
	logger *slog.Logger
}

// New creates a notch engine. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Frequencies returns the notch frequencies the request expands to: the
// fundamental always, plus, when requested, every harmonic below 95% of
// Nyquist. Whether the fundamental itself is designable is left to the
// filter design step.
func Frequencies(p Params) []float64 {
	freqs := []float64{p.Frequency}
	if !p.RemoveHarmonics {
		return freqs
	}
	max := p.MaxHarmonic
	if max <= 0 {
		max = 5
	}
	limit := harmonicGuard * p.SamplingRate / 2
	for k := 2; k <= max; k++ {
		f := p.Frequency * float64(k)
		if f >= limit {
			break
		}
		freqs = append(freqs, f)
	}
	return freqs
}

// Notch removes generic narrow-band interference, defaulting the
// fundamental to 50 Hz. Zero-valued tuning fields fall back to the
// standard Q of 30 and max harmonic of 5.
func (e *Engine) Notch(c *channels.Collection, p Params) (*channels.Collection, error) {
	return e.Process(c, withDefaults(p, 50))
}

// ACNotch removes power-line interference, defaulting the fundamental to
// the 60 Hz mains frequency. Otherwise identical to Notch.
func (e *Engine) ACNotch(c *channels.Collection, p Params) (*channels.Collection, error) {
	return e.Process(c, withDefaults(p, 60))
}

func withDefaults(p Params, freq float64) Params {
	if p.Frequency == 0 {
		p.Frequency = freq
	}
	if p.QualityFactor == 0 {
		p.QualityFactor = 30
	}
	if p.MaxHarmonic == 0 {
		p.MaxHarmonic = 5
	}
	return p
}

// Process removes the fundamental and any requested harmonics, applying
// one zero-phase notch per frequency in sequence.
func (e *Engine) Process(c *channels.Collection, p Params) (*channels.Collection, error) {
	if c == nil {
		return nil, sperrors.Validation("no data to process")
	}
	if p.SamplingRate <= 0 {
		return nil, sperrors.Validation("sampling rate must be positive, got %g", p.SamplingRate)
	}
	if p.Frequency <= 0 {
		return nil, sperrors.Validation("notch frequency must be positive, got %g", p.Frequency)
	}
	if p.QualityFactor <= 0 {
		return nil, sperrors.Validation("quality factor must be positive, got %g", p.QualityFactor)
	}

	freqs := Frequencies(p)
	filters := make([]iir.Biquad, len(freqs))
	for i, f := range freqs {
		bq, err := iir.Notch(f, p.QualityFactor, p.SamplingRate)
		if err != nil {
			return nil, sperrors.FilterDesign(err)
		}
		filters[i] = bq
	}

	e.logger.Debug("notch_chain",
		slog.Float64("fundamental_hz", p.Frequency),
		slog.Int("notches", len(filters)),
		slog.Float64("q", p.QualityFactor))

	return c.Map(func(name string, samples []float64) ([]float64, error) {
		if p.Channel != "" && name != p.Channel {
			return samples, nil
		}
		for _, bq := range filters {
			samples = bq.FiltFilt(samples)
		}
		return samples, nil
	})
}
