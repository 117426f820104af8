package trim

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// fillWindow overwrites samples[w.start:w.end] with draws from a normal
// distribution fitted to the signal immediately around the window.
func (e *Engine) fillWindow(samples []float64, w window) {
	mean, std := e.edgeStats(samples, w)

	dist := distuv.Normal{Mu: mean, Sigma: std, Src: e.cfg.Source}
	for i := w.start; i < w.end; i++ {
		samples[i] = dist.Rand()
	}

	e.logger.Debug("smart_fill_window",
		slog.Int("start", w.start),
		slog.Int("end", w.end),
		slog.Float64("mean", mean),
		slog.Float64("std", std))
}

// edgeStats estimates the fill distribution from up to EdgeWindow samples
// on each side of the window: the two local estimates are averaged when
// both sides exist, one side is used alone when the other is missing,
// and a unit normal is the fallback when the window spans the whole
// signal. The standard deviation is floored to avoid a degenerate
// zero-variance fill.
func (e *Engine) edgeStats(samples []float64, w window) (float64, float64) {
	lo := w.start - e.cfg.EdgeWindow
	if lo < 0 {
		lo = 0
	}
	hi := w.end + e.cfg.EdgeWindow
	if hi > len(samples) {
		hi = len(samples)
	}
	pre := samples[lo:w.start]
	post := samples[w.end:hi]

	var mean, std float64
	switch {
	case len(pre) > 0 && len(post) > 0:
		preMean, preStd := meanStd(pre)
		postMean, postStd := meanStd(post)
		mean = (preMean + postMean) / 2
		std = (preStd + postStd) / 2
	case len(pre) > 0:
		mean, std = meanStd(pre)
	case len(post) > 0:
		mean, std = meanStd(post)
	default:
		mean, std = 0, 1
	}

	if math.IsNaN(std) || std < e.cfg.StdFloor {
		std = e.cfg.StdFloor
	}
	return mean, std
}

func meanStd(samples []float64) (float64, float64) {
	if len(samples) == 1 {
		return samples[0], 0
	}
	return stat.MeanStdDev(samples, nil)
}
