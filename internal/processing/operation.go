package processing

import "strings"

// Operation identifies a processing step the dispatcher can route.
type Operation string

const (
	OpTrim         Operation = "trim"
	OpLowpass      Operation = "lowpass"
	OpHighpass     Operation = "highpass"
	OpNotch        Operation = "notch"
	OpACNotch      Operation = "ac_notch"
	OpMainsDenoise Operation = "mains_denoise"
	OpBaseline     Operation = "baseline"
)

// displayNames maps the UI vocabulary to operation kinds, keeping the
// engine dispatch independent of what callers label the steps.
var displayNames = map[string]Operation{
	"Trim":                OpTrim,
	"Low-pass Filter":     OpLowpass,
	"High-pass Filter":    OpHighpass,
	"Notch Filter":        OpNotch,
	"AC Notch Filter":     OpACNotch,
	"Mains Denoise":       OpMainsDenoise,
	"Baseline Correction": OpBaseline,
}

// canonical holds the internal identifiers.
var canonical = map[Operation]bool{
	OpTrim:         true,
	OpLowpass:      true,
	OpHighpass:     true,
	OpNotch:        true,
	OpACNotch:      true,
	OpMainsDenoise: true,
	OpBaseline:     true,
}

// ParseOperation resolves an external operation name, accepting both
// display names and canonical identifiers (case-insensitively for the
// latter). The second return value is false for unrecognized names.
func ParseOperation(name string) (Operation, bool) {
	if op, ok := displayNames[name]; ok {
		return op, true
	}
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	if canonical[op] {
		return op, true
	}
	return "", false
}
