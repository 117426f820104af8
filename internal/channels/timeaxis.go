package channels

// ResolveTimeAxis returns the time axis to use for index calculations on
// a series of n samples, applying the shared precedence rules:
//
//  1. the externally supplied reference axis, when its length matches n
//  2. the collection's own "Time" channel, when its length matches n
//  3. an axis synthesized as index/samplingRate
//
// The collection may be nil (pure array input). The synthesized axis is
// freshly allocated; the reference axis and Time channel are returned
// as-is and must not be mutated by callers.
func ResolveTimeAxis(c *Collection, ref []float64, n int, samplingRate float64) []float64 {
	if len(ref) == n && n > 0 {
		return ref
	}
	if c != nil && c.form == FormNamed {
		if t, ok := c.Channel(TimeChannel); ok && len(t) == n {
			return t
		}
	}
	return SynthesizeTimeAxis(0, n, samplingRate)
}

// SynthesizeTimeAxis builds the time axis index/samplingRate for sample
// indices [start, end). Indices are absolute so the synthesized axis
// preserves absolute timing for windows that do not begin at zero.
func SynthesizeTimeAxis(start, end int, samplingRate float64) []float64 {
	if end < start {
		end = start
	}
	if samplingRate <= 0 {
		samplingRate = 1
	}
	axis := make([]float64, end-start)
	for i := range axis {
		axis[i] = float64(start+i) / samplingRate
	}
	return axis
}
