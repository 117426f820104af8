package channels

import "math"

// EnsureConsistency truncates every channel of a named collection to the
// shortest channel length when lengths diverge. It is a repair utility
// for collections damaged by partial processing; the dispatcher
// never invokes it automatically. It reports whether any channel was
// truncated. Vector and matrix collections are always consistent.
func EnsureConsistency(c *Collection) bool {
	if c == nil || c.form != FormNamed || len(c.names) == 0 {
		return false
	}

	shortest := math.MaxInt
	for _, name := range c.names {
		if n := len(c.data[name]); n < shortest {
			shortest = n
		}
	}

	truncated := false
	for _, name := range c.names {
		if len(c.data[name]) > shortest {
			c.data[name] = c.data[name][:shortest]
			truncated = true
		}
	}
	return truncated
}

// ReplaceNonFinite replaces every NaN with 0 and clamps infinities to the
// largest finite value, in place, across all channels of the collection.
// This is the explicit post-processing contract of the dispatcher: results
// never carry NaN, at the documented cost of conflating missing samples
// with zero.
func ReplaceNonFinite(c *Collection) {
	if c == nil {
		return
	}
	switch c.form {
	case FormVector:
		replaceNonFinite(c.vector)
	case FormMatrix:
		for _, col := range c.columns {
			replaceNonFinite(col)
		}
	default:
		for _, name := range c.names {
			replaceNonFinite(c.data[name])
		}
	}
}

func replaceNonFinite(samples []float64) {
	for i, v := range samples {
		switch {
		case math.IsNaN(v):
			samples[i] = 0
		case math.IsInf(v, 1):
			samples[i] = math.MaxFloat64
		case math.IsInf(v, -1):
			samples[i] = -math.MaxFloat64
		}
	}
}
