package iir

import (
	"fmt"
	"math"
)

// rbj computes the intermediate terms of the RBJ audio-EQ-cookbook
// designs for a center/corner frequency and quality factor.
func rbj(freq, q, sampleRate float64) (sn, cs, alpha float64) {
	omega := 2 * math.Pi * freq / sampleRate
	sn = math.Sin(omega)
	cs = math.Cos(omega)
	alpha = sn / (2 * q)
	return sn, cs, alpha
}

// normalize builds a Biquad from raw cookbook coefficients, dividing
// through by a0.
func normalize(b0, b1, b2, a0, a1, a2 float64) Biquad {
	inv := 1 / a0
	return Biquad{
		B: [3]float64{b0 * inv, b1 * inv, b2 * inv},
		A: [2]float64{a1 * inv, a2 * inv},
	}
}

// Lowpass designs a single RBJ low-pass section.
func Lowpass(freq, q, sampleRate float64) Biquad {
	_, cs, alpha := rbj(freq, q, sampleRate)
	b1 := 1 - cs
	return normalize(b1/2, b1, b1/2, 1+alpha, -2*cs, 1-alpha)
}

// Highpass designs a single RBJ high-pass section.
func Highpass(freq, q, sampleRate float64) Biquad {
	_, cs, alpha := rbj(freq, q, sampleRate)
	b1 := 1 + cs
	return normalize(b1/2, -b1, b1/2, 1+alpha, -2*cs, 1-alpha)
}

// Notch designs a narrow band-reject section at freq with the given
// quality factor. Higher Q gives a narrower notch.
func Notch(freq, q, sampleRate float64) (Biquad, error) {
	if err := checkFrequency(freq, sampleRate); err != nil {
		return Biquad{}, err
	}
	if q <= 0 || math.IsNaN(q) {
		return Biquad{}, fmt.Errorf("quality factor must be positive, got %g", q)
	}
	_, cs, alpha := rbj(freq, q, sampleRate)
	return normalize(1, -2*cs, 1, 1+alpha, -2*cs, 1-alpha), nil
}

// ButterworthLowpass designs a low-pass Butterworth filter of the given
// even order as a cascade of RBJ sections with the Butterworth Q ladder.
func ButterworthLowpass(cutoff float64, order int, sampleRate float64) (Cascade, error) {
	qs, err := butterworthQs(cutoff, order, sampleRate)
	if err != nil {
		return nil, err
	}
	cascade := make(Cascade, len(qs))
	for i, q := range qs {
		cascade[i] = Lowpass(cutoff, q, sampleRate)
	}
	return cascade, nil
}

// ButterworthHighpass designs a high-pass Butterworth filter of the given
// even order as a cascade of RBJ sections with the Butterworth Q ladder.
func ButterworthHighpass(cutoff float64, order int, sampleRate float64) (Cascade, error) {
	qs, err := butterworthQs(cutoff, order, sampleRate)
	if err != nil {
		return nil, err
	}
	cascade := make(Cascade, len(qs))
	for i, q := range qs {
		cascade[i] = Highpass(cutoff, q, sampleRate)
	}
	return cascade, nil
}

// butterworthQs returns the quality factors of the second-order sections
// of an order-N Butterworth filter: Q_k = 1/(2 cos((2k+1)π/2N)).
func butterworthQs(cutoff float64, order int, sampleRate float64) ([]float64, error) {
	if err := checkFrequency(cutoff, sampleRate); err != nil {
		return nil, err
	}
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("Butterworth order must be a positive even number, got %d", order)
	}
	qs := make([]float64, order/2)
	for k := range qs {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		qs[k] = 1 / (2 * math.Cos(theta))
	}
	return qs, nil
}

func checkFrequency(freq, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sampling rate must be positive and finite, got %g", sampleRate)
	}
	nyquist := sampleRate / 2
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return fmt.Errorf("frequency must be positive and finite, got %g", freq)
	}
	if freq >= nyquist {
		return fmt.Errorf("frequency %g Hz is at or above the Nyquist frequency %g Hz", freq, nyquist)
	}
	return nil
}
