// Package loader defines the boundary to file-format readers. The
// readers themselves live outside this module; the processing core only
// consumes the collection and metadata they produce.
package loader

import (
	"fmt"

	"sigproc/internal/channels"
)

// Loader produces a channel collection from a file path. ok is false
// when the file could not be read or recognized.
type Loader interface {
	Load(path string) (ok bool, c *channels.Collection, info Info)
}

// Info carries loader metadata such as source format and sampling rate.
type Info map[string]any

// SamplingRateKey is the conventional Info key for the acquisition rate.
const SamplingRateKey = "Sampling Rate"

// SamplingRate extracts the acquisition rate in Hz. Readers record it
// either as a number or as a display string like "1000 Hz"; for strings
// the leading numeric token is parsed. The second return value is false
// when the key is missing or unparseable.
func (i Info) SamplingRate() (float64, bool) {
	v, ok := i[SamplingRateKey]
	if !ok {
		return 0, false
	}

	switch rate := v.(type) {
	case float64:
		return rate, rate > 0
	case float32:
		return float64(rate), rate > 0
	case int:
		return float64(rate), rate > 0
	case int64:
		return float64(rate), rate > 0
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(rate, "%f", &parsed); err != nil {
			return 0, false
		}
		return parsed, parsed > 0
	default:
		return 0, false
	}
}
