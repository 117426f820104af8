package baseline

import (
	"log/slog"

	"github.com/SeanJxie/polygo"
	"github.com/openacid/slimarray/polyfit"
	"gonum.org/v1/gonum/stat"

	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
)

// Method selects how the fit region is chosen.
type Method string

const (
	// MethodFirstNSeconds fits over all samples whose relative time is at
	// most FirstNSeconds.
	MethodFirstNSeconds Method = "first_n_seconds"
	// MethodTimeRange fits over relative times in
	// [FitStartTime, FitEndTime].
	MethodTimeRange Method = "time_range"
)

// Correction selects the polynomial degree of the fitted trend.
type Correction string

const (
	CorrectionLinear Correction = "linear"
	CorrectionPoly2  Correction = "poly2"
	CorrectionPoly3  Correction = "poly3"
)

// degree maps a correction to its polynomial degree. Unrecognized values
// fall back to linear.
func (c Correction) degree() int {
	switch c {
	case CorrectionPoly2:
		return 2
	case CorrectionPoly3:
		return 3
	default:
		return 1
	}
}

// Params describes one baseline correction request.
type Params struct {
	Method Method
	// FirstNSeconds is the fit window length for MethodFirstNSeconds.
	FirstNSeconds float64
	// FitStartTime and FitEndTime bound the fit region, in seconds of
	// relative time, for MethodTimeRange.
	FitStartTime float64
	FitEndTime   float64
	Correction   Correction
	// PreserveMean re-adds the original DC level after detrending: the
	// fitted intercept for linear correction, the plain signal mean for
	// the polynomial corrections.
	PreserveMean bool
	SamplingRate float64
	// Channel restricts processing to a single named channel; empty means
	// all data channels.
	Channel string
}

// Engine fits and subtracts baseline trends from channel collections.
type Engine struct {
	logger *slog.Logger
}

// New creates a baseline engine. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Process returns a new collection with the fitted trend removed from
// every selected data channel. ref is the optional externally tracked
// time axis; it takes precedence over an embedded "Time" channel.
//
// The trend is fitted over the configured region only but evaluated and
// subtracted over the whole series. All timing is relative to the first
// value of the resolved axis, so correction is invariant to absolute
// time offset.
func (e *Engine) Process(c *channels.Collection, p Params, ref []float64) (*channels.Collection, error) {
	if c == nil {
		return nil, sperrors.Validation("no data to process")
	}
	if p.Method == "" {
		p.Method = MethodTimeRange
	}

	return c.Map(func(name string, samples []float64) ([]float64, error) {
		if p.Channel != "" && name != p.Channel {
			return samples, nil
		}
		return e.correct(c, samples, p, ref)
	})
}

func (e *Engine) correct(c *channels.Collection, samples []float64, p Params, ref []float64) ([]float64, error) {
	n := len(samples)
	if n == 0 {
		return samples, nil
	}

	axis := channels.ResolveTimeAxis(c, ref, n, p.SamplingRate)
	rel := make([]float64, n)
	for i, t := range axis {
		rel[i] = t - axis[0]
	}

	xs, ys, err := fitRegion(rel, samples, p)
	if err != nil {
		return nil, err
	}

	trend, intercept, err := fitTrend(xs, ys, p.Correction)
	if err != nil {
		return nil, err
	}

	var offset float64
	if p.PreserveMean {
		if p.Correction.degree() == 1 {
			offset = intercept
		} else {
			offset = stat.Mean(samples, nil)
		}
	}

	for i := range samples {
		samples[i] = samples[i] - trend(rel[i]) + offset
	}
	return samples, nil
}

// fitRegion selects the relative times and sample values the trend is
// fitted on.
func fitRegion(rel, samples []float64, p Params) ([]float64, []float64, error) {
	var xs, ys []float64
	for i, t := range rel {
		switch p.Method {
		case MethodFirstNSeconds:
			if t > p.FirstNSeconds {
				continue
			}
		default:
			if t < p.FitStartTime || t > p.FitEndTime {
				continue
			}
		}
		xs = append(xs, t)
		ys = append(ys, samples[i])
	}

	if len(xs) == 0 {
		if p.Method == MethodFirstNSeconds {
			return nil, nil, sperrors.Range(
				"no samples within the first %g seconds", p.FirstNSeconds)
		}
		return nil, nil, sperrors.Range(
			"no samples in the baseline fit range [%gs, %gs]", p.FitStartTime, p.FitEndTime)
	}
	return xs, ys, nil
}

// fitTrend fits the requested polynomial and returns an evaluator over
// relative time plus the fitted intercept.
func fitTrend(xs, ys []float64, correction Correction) (func(float64) float64, float64, error) {
	if correction.degree() == 1 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		return func(t float64) float64 { return alpha + beta*t }, alpha, nil
	}

	fit := polyfit.NewFit(xs, ys, correction.degree())
	coeffs := fit.Solve()
	poly, err := polygo.NewRealPolynomial(coeffs)
	if err != nil {
		return nil, 0, sperrors.Wrap(sperrors.CodeInternal, err, "baseline polynomial fit failed")
	}
	return poly.At, coeffs[0], nil
}
