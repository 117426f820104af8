// Package notch removes narrow-band interference, typically power-line
// hum and its harmonics, using chained zero-phase notch filters.
package notch
