// Package iir implements the IIR filter primitives shared by the filter
// and notch engines: second-order sections, zero-phase batch application,
// and Butterworth / notch coefficient design.
package iir

// Biquad is a second-order IIR section in Direct-Form II transposed.
// Coefficients must be normalized so the leading denominator term is 1:
// B holds b0..b2 and A holds a1, a2.
type Biquad struct {
	B [3]float64
	A [2]float64

	w [2]float64
}

// Filter processes a single sample, updating the internal delay line.
func (f *Biquad) Filter(sample float64) float64 {
	y := f.w[0] + f.B[0]*sample
	f.w[0] = f.w[1] - f.A[0]*y + f.B[1]*sample
	f.w[1] = f.B[2]*sample - f.A[1]*y
	return y
}

// edgePad is the number of reflected samples prepended and appended before
// the forward pass. Signals no longer than this are returned unfiltered,
// since the state estimation needs more than 3*order samples.
const edgePad = 6

// FiltFilt applies the section forward then backward over a complete
// signal so the net phase shift is zero, preserving event timing. Initial
// filter states are chosen per Gustafsson, "Determining the initial states
// in forward-backward filtering" (IEEE Trans. Signal Processing 44.4,
// 1996), with mirrored edge extension to suppress startup transients.
// The input slice is not modified; the section's delay line is scratch
// state and holds no meaningful value afterwards.
func (f *Biquad) FiltFilt(signal []float64) []float64 {
	out := make([]float64, len(signal))
	if len(signal) <= edgePad {
		copy(out, signal)
		return out
	}

	// DC gain of the section, used to scale the steady-state response.
	kdc := (f.B[0] + f.B[1] + f.B[2]) / (1 + f.A[0] + f.A[1])
	var si [2]float64
	si[1] = f.B[2] - kdc*f.A[1]
	si[0] = si[1] + f.B[1] - kdc*f.A[0]

	ext := make([]float64, 0, len(signal)+2*edgePad)

	// Forward pass over the mirrored extension.
	first, last := signal[0], signal[len(signal)-1]
	f.w[0] = si[0] * (2*first - signal[edgePad])
	f.w[1] = si[1] * (2*first - signal[edgePad])
	for i := edgePad; i >= 1; i-- {
		ext = append(ext, f.Filter(2*first-signal[i]))
	}
	for _, x := range signal {
		ext = append(ext, f.Filter(x))
	}
	for i := 1; i <= edgePad; i++ {
		ext = append(ext, f.Filter(2*last-signal[len(signal)-1-i]))
	}

	// Backward pass.
	f.w[0] = si[0] * ext[len(ext)-1]
	f.w[1] = si[1] * ext[len(ext)-1]
	for i := len(ext) - 1; i >= 0; i-- {
		ext[i] = f.Filter(ext[i])
	}

	copy(out, ext[edgePad:len(signal)+edgePad])
	return out
}

// Cascade is an ordered chain of second-order sections forming a
// higher-order filter.
type Cascade []Biquad

// FiltFilt applies every section of the cascade zero-phase in sequence.
// Each section runs on a private copy so the cascade stays reusable.
func (c Cascade) FiltFilt(signal []float64) []float64 {
	out := signal
	for _, section := range c {
		s := section
		out = s.FiltFilt(out)
	}
	if len(c) == 0 {
		out = make([]float64, len(signal))
		copy(out, signal)
	}
	return out
}
