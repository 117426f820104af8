package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplingRate(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float", 1000.0, 1000, true},
		{"int", 500, 500, true},
		{"int64", int64(250), 250, true},
		{"string with unit", "1000 Hz", 1000, true},
		{"string without space", "2000Hz", 2000, true},
		{"fractional string", "1234.5 Hz", 1234.5, true},
		{"bare numeric string", "100", 100, true},
		{"non-numeric string", "unknown", 0, false},
		{"unit before number", "Hz 1000", 0, false},
		{"zero rate", 0.0, 0, false},
		{"negative rate", -100.0, 0, false},
		{"unsupported type", []byte("1000"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{SamplingRateKey: tt.value}
			got, ok := info.SamplingRate()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSamplingRateMissingKey(t *testing.T) {
	_, ok := Info{}.SamplingRate()
	assert.False(t, ok)

	_, ok = Info{"Source File": "run1.h5"}.SamplingRate()
	assert.False(t, ok)
}
