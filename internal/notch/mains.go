package notch

import (
	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
)

// Region selects the mains power-line frequency.
type Region string

const (
	// RegionChina covers 50 Hz grids.
	RegionChina Region = "china"
	// RegionUS covers 60 Hz grids.
	RegionUS Region = "us"
	// RegionCustom uses a caller-supplied frequency.
	RegionCustom Region = "custom"
)

// Strength selects a preset trade-off between hum suppression and signal
// distortion.
type Strength string

const (
	// StrengthLight is a wide, shallow cleanup touching few harmonics.
	StrengthLight Strength = "light"
	// StrengthStandard is the default preset.
	StrengthStandard Strength = "standard"
	// StrengthStrong is a narrow, deep cleanup across many harmonics.
	StrengthStrong Strength = "strong"
)

// MainsParams describes a preset-driven power-line cleanup request.
type MainsParams struct {
	Region Region
	// CustomFrequency is the fundamental in Hz when Region is custom.
	CustomFrequency float64
	Strength        Strength
	SamplingRate    float64
	Channel         string
}

// Resolve expands the presets into a concrete notch request.
func (m MainsParams) Resolve() (Params, error) {
	p := Params{
		RemoveHarmonics: true,
		SamplingRate:    m.SamplingRate,
		Channel:         m.Channel,
	}

	switch m.Region {
	case RegionChina, "":
		p.Frequency = 50
	case RegionUS:
		p.Frequency = 60
	case RegionCustom:
		if m.CustomFrequency <= 0 {
			return Params{}, sperrors.Validation(
				"custom mains frequency must be positive, got %g", m.CustomFrequency)
		}
		p.Frequency = m.CustomFrequency
	default:
		return Params{}, sperrors.Validation("unknown mains region: %s", m.Region)
	}

	switch m.Strength {
	case StrengthLight:
		p.QualityFactor = 15
		p.MaxHarmonic = 3
	case StrengthStandard, "":
		p.QualityFactor = 30
		p.MaxHarmonic = 5
	case StrengthStrong:
		p.QualityFactor = 50
		p.MaxHarmonic = 7
	default:
		return Params{}, sperrors.Validation("unknown mains strength: %s", m.Strength)
	}

	return p, nil
}

// MainsDenoise removes power-line hum using regional frequency and
// strength presets instead of raw filter parameters.
func (e *Engine) MainsDenoise(c *channels.Collection, m MainsParams) (*channels.Collection, error) {
	p, err := m.Resolve()
	if err != nil {
		return nil, err
	}
	return e.Process(c, p)
}
