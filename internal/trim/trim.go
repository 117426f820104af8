package trim

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/exp/rand"

	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
)

// Mode selects between keeping and removing the time window.
type Mode string

const (
	// ModePositive keeps only the selected window.
	ModePositive Mode = "positive"
	// ModeNegative removes the selected window.
	ModeNegative Mode = "negative"
)

// Strategy selects how a negative trim closes the removed window.
type Strategy string

const (
	// StrategyDeleteShift deletes the window and shifts the tail backward
	// so the time axis stays continuous.
	StrategyDeleteShift Strategy = "delete_shift"
	// StrategySmartFill overwrites the window with synthetic samples drawn
	// from the local signal statistics, keeping the length unchanged.
	StrategySmartFill Strategy = "smart_fill"
)

// Params describes one trim request.
type Params struct {
	StartTime    float64
	EndTime      float64
	SamplingRate float64
	// Channel restricts processing to a single named channel; empty means
	// all channels. The "Time" channel always participates.
	Channel  string
	Mode     Mode
	Strategy Strategy
}

// Config tunes the smart-fill strategy.
type Config struct {
	// EdgeWindow is the number of samples on each side of the removed
	// window used to estimate the fill statistics.
	EdgeWindow int
	// StdFloor is the minimum standard deviation of the fill noise,
	// guarding against degenerate zero-variance fills.
	StdFloor float64
	// Source drives the fill randomness. Nil uses the process-global
	// source; inject a seeded source for reproducible fills.
	Source rand.Source
}

// DefaultConfig returns the standard smart-fill tuning.
func DefaultConfig() Config {
	return Config{EdgeWindow: 10, StdFloor: 0.01}
}

// Engine performs positive and negative trims over channel collections.
type Engine struct {
	logger *slog.Logger
	cfg    Config
}

// New creates a trim engine. A nil logger falls back to slog.Default().
func New(logger *slog.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.EdgeWindow <= 0 {
		cfg.EdgeWindow = 10
	}
	if cfg.StdFloor <= 0 {
		cfg.StdFloor = 0.01
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Process returns a new collection with the requested window kept or
// removed. ref is the optional externally tracked time axis; it takes
// precedence over an embedded "Time" channel for index calculations.
func (e *Engine) Process(c *channels.Collection, p Params, ref []float64) (*channels.Collection, error) {
	if c == nil {
		return nil, sperrors.Validation("no data to process")
	}
	if p.Mode == "" {
		p.Mode = ModePositive
	}
	if p.Strategy == "" {
		p.Strategy = StrategySmartFill
	}

	switch p.Mode {
	case ModePositive:
		return e.positive(c, p, ref)
	case ModeNegative:
		switch p.Strategy {
		case StrategyDeleteShift:
			return e.deleteShift(c, p, ref)
		case StrategySmartFill:
			return e.smartFill(c, p, ref)
		default:
			return nil, sperrors.Validation("unknown negative trim strategy: %s", p.Strategy)
		}
	default:
		return nil, sperrors.Validation("unknown trim mode: %s", p.Mode)
	}
}

// window is a half-open sample index range [start, end).
type window struct {
	start, end int
}

func (w window) size() int {
	return w.end - w.start
}

// resolveWindow computes the boundary sample indices for the collection
// as a whole. One axis is picked by precedence (reference axis when its
// length matches, else an embedded "Time" channel, else indices from
// round(time*samplingRate)) and the resulting window is shared by every
// channel, so all processed channels come out the same length. The
// second return value is false when the requested time range selects no
// samples at all.
func resolveWindow(c *channels.Collection, ref []float64, p Params) (window, bool) {
	n := sampleCount(c)
	if n == 0 {
		return window{}, false
	}

	var axis []float64
	switch {
	case len(ref) == n:
		axis = ref
	case c.Form() == channels.FormNamed:
		if t, ok := c.Channel(channels.TimeChannel); ok && len(t) == n {
			axis = t
		}
	}

	if axis != nil {
		first, last := -1, -1
		for i, t := range axis {
			if t >= p.StartTime {
				first = i
				break
			}
		}
		for i := n - 1; i >= 0; i-- {
			if axis[i] <= p.EndTime {
				last = i
				break
			}
		}
		if first < 0 || last < 0 {
			return window{}, false
		}
		return clampWindow(first, last+1, n), true
	}

	start := int(math.Round(p.StartTime * p.SamplingRate))
	end := int(math.Round(p.EndTime * p.SamplingRate))
	return clampWindow(start, end, n), true
}

// sampleCount returns the length the shared window is resolved against:
// the "Time" channel when the collection carries one, else the first
// data channel.
func sampleCount(c *channels.Collection) int {
	switch c.Form() {
	case channels.FormVector:
		return len(c.Vector())
	case channels.FormMatrix:
		cols := c.Columns()
		if len(cols) == 0 {
			return 0
		}
		return len(cols[0])
	default:
		if t, ok := c.Channel(channels.TimeChannel); ok {
			return len(t)
		}
		return c.Len()
	}
}

// clampWindow forces the indices into [0, n-1] / [start+1, n] so the
// window is never empty and never out of bounds.
func clampWindow(start, end, n int) window {
	if start < 0 {
		start = 0
	}
	if start > n-1 {
		start = n - 1
	}
	if end > n {
		end = n
	}
	if end < start+1 {
		end = start + 1
	}
	return window{start: start, end: end}
}

// fit re-clamps the shared window against one channel's own length, for
// collections whose channel lengths have diverged.
func (w window) fit(n int) window {
	if w.start < n && w.end <= n {
		return w
	}
	return clampWindow(w.start, w.end, n)
}

// selected reports whether a channel participates in the trim.
func selected(name, restrict string) bool {
	return restrict == "" || name == restrict || name == channels.TimeChannel
}

// positive keeps only the [StartTime, EndTime] window.
func (e *Engine) positive(c *channels.Collection, p Params, ref []float64) (*channels.Collection, error) {
	w, ok := resolveWindow(c, ref, p)
	if !ok {
		return nil, rangeError(p)
	}

	switch c.Form() {
	case channels.FormVector:
		return channels.NewVector(sliceWindow(c.Vector(), w)), nil

	case channels.FormMatrix:
		cols := c.Columns()
		out := make([][]float64, len(cols))
		for i, col := range cols {
			out[i] = sliceWindow(col, w)
		}
		return channels.NewMatrix(out)

	default:
		return e.positiveNamed(c, p, ref, w), nil
	}
}

func (e *Engine) positiveNamed(c *channels.Collection, p Params, ref []float64, w window) *channels.Collection {
	out := channels.NewNamed()
	for _, name := range c.Names() {
		data, _ := c.Channel(name)
		if !selected(name, p.Channel) {
			out.SetChannel(name, clone(data))
			continue
		}
		out.SetChannel(name, sliceWindow(data, w))
	}

	// Downstream consumers need absolute timing even when the source
	// carried no Time channel.
	if !out.HasChannel(channels.TimeChannel) {
		var axis []float64
		if len(ref) >= w.end && w.size() > 0 {
			axis = clone(ref[w.start:w.end])
		} else {
			axis = channels.SynthesizeTimeAxis(w.start, w.end, p.SamplingRate)
		}
		out.SetChannel(channels.TimeChannel, axis)
	}

	return out
}

// deleteShift removes the window and closes the gap, shifting time values
// backward so the axis stays continuous. A window entirely outside the
// data is a safe no-op.
func (e *Engine) deleteShift(c *channels.Collection, p Params, ref []float64) (*channels.Collection, error) {
	w, ok := resolveWindow(c, ref, p)
	if !ok {
		return c.Clone(), nil
	}

	switch c.Form() {
	case channels.FormVector:
		data := c.Vector()
		kept := spliceOut(data, w.fit(len(data)))
		if len(ref) == len(data) {
			// Promote so the shifted axis is not lost.
			out := channels.NewNamed()
			out.SetChannel(channels.TimeChannel, spliceOutShifted(ref, w))
			out.SetChannel("Data", kept)
			return out, nil
		}
		return channels.NewVector(kept), nil

	case channels.FormMatrix:
		cols := c.Columns()
		if len(cols) > 0 && len(ref) == len(cols[0]) {
			out := channels.NewNamed()
			out.SetChannel(channels.TimeChannel, spliceOutShifted(ref, w))
			for i, col := range cols {
				out.SetChannel(fmt.Sprintf("Data %d", i+1), spliceOut(col, w.fit(len(col))))
			}
			return out, nil
		}
		kept := make([][]float64, len(cols))
		for i, col := range cols {
			kept[i] = spliceOut(col, w.fit(len(col)))
		}
		return channels.NewMatrix(kept)

	default:
		out := channels.NewNamed()
		for _, name := range c.Names() {
			data, _ := c.Channel(name)
			if !selected(name, p.Channel) {
				out.SetChannel(name, clone(data))
				continue
			}
			cw := w.fit(len(data))
			if name == channels.TimeChannel {
				out.SetChannel(name, spliceOutShifted(data, cw))
			} else {
				out.SetChannel(name, spliceOut(data, cw))
			}
		}
		return out, nil
	}
}

// sliceWindow extracts the window from one channel, re-clamped to that
// channel's length.
func sliceWindow(data []float64, w window) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	cw := w.fit(len(data))
	return clone(data[cw.start:cw.end])
}

// spliceOut concatenates the samples before and after the window.
func spliceOut(data []float64, w window) []float64 {
	out := make([]float64, 0, len(data)-w.size())
	out = append(out, data[:w.start]...)
	out = append(out, data[w.end:]...)
	return out
}

// spliceOutShifted concatenates time values around the window, shifting
// the tail backward by the gap the deletion introduced so the axis stays
// monotonic with no jump at the splice point.
func spliceOutShifted(axis []float64, w window) []float64 {
	out := make([]float64, 0, len(axis)-w.size())
	out = append(out, axis[:w.start]...)
	tail := axis[w.end:]
	if w.start == 0 || len(tail) == 0 {
		return append(out, tail...)
	}
	shift := tail[0] - axis[w.start-1]
	for _, t := range tail {
		out = append(out, t-shift)
	}
	return out
}

// smartFill overwrites the window with synthetic noise matching the local
// signal statistics. Output length always equals input length; a window
// entirely outside the data is a safe no-op.
func (e *Engine) smartFill(c *channels.Collection, p Params, ref []float64) (*channels.Collection, error) {
	w, ok := resolveWindow(c, ref, p)
	if !ok {
		return c.Clone(), nil
	}

	switch c.Form() {
	case channels.FormVector:
		data := clone(c.Vector())
		e.fillWindow(data, w.fit(len(data)))
		return channels.NewVector(data), nil

	case channels.FormMatrix:
		cols := c.Columns()
		out := make([][]float64, len(cols))
		for i, col := range cols {
			out[i] = clone(col)
			e.fillWindow(out[i], w.fit(len(col)))
		}
		return channels.NewMatrix(out)

	default:
		out := channels.NewNamed()
		for _, name := range c.Names() {
			data, _ := c.Channel(name)
			filled := clone(data)
			if selected(name, p.Channel) && name != channels.TimeChannel {
				e.fillWindow(filled, w.fit(len(filled)))
			}
			out.SetChannel(name, filled)
		}
		return out, nil
	}
}

func rangeError(p Params) error {
	return sperrors.Range("time range [%gs, %gs] is outside the data range", p.StartTime, p.EndTime)
}

func clone(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}
