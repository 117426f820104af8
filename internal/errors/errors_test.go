package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeRangeError, "window outside data")

	assert.Equal(t, CodeRangeError, err.Code)
	assert.Equal(t, "window outside data", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeValidationFailed, "start time %.1fs must be before end time %.1fs", 5.0, 2.0)

	assert.Equal(t, "start time 5.0s must be before end time 2.0s", err.Error())
	assert.Equal(t, CodeValidationFailed, err.Code)
}

func TestWrap(t *testing.T) {
	underlying := stderrors.New("singular matrix")
	err := Wrap(CodeFilterDesign, underlying, "Filter design error")

	assert.Equal(t, "Filter design error: singular matrix", err.Error())
	assert.ErrorIs(t, err, underlying)
}

func TestHelperConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{
			name:     "validation",
			err:      Validation("cutoff must be positive, got %g", -1.0),
			wantCode: CodeValidationFailed,
			wantMsg:  "cutoff must be positive, got -1",
		},
		{
			name:     "range",
			err:      Range("time range [%gs, %gs] is outside the data", 50.0, 60.0),
			wantCode: CodeRangeError,
			wantMsg:  "time range [50s, 60s] is outside the data",
		},
		{
			name:     "filter design",
			err:      FilterDesign(stderrors.New("cutoff at Nyquist")),
			wantCode: CodeFilterDesign,
			wantMsg:  "Filter design error: cutoff at Nyquist",
		},
		{
			name:     "unknown operation",
			err:      UnknownOperation("resample"),
			wantCode: CodeUnknownOperation,
			wantMsg:  "Unknown operation: resample",
		},
		{
			name:     "internal",
			err:      Internal(stderrors.New("index out of range")),
			wantCode: CodeInternal,
			wantMsg:  "Processing error: index out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pe *ProcessingError
			require.True(t, stderrors.As(tt.err, &pe))
			assert.Equal(t, tt.wantCode, pe.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeRangeError, CodeOf(Range("empty window")))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain error")))

	// Wrapped ProcessingErrors keep their code through fmt wrapping
	wrapped := fmt.Errorf("while trimming: %w", Range("empty window"))
	assert.Equal(t, CodeRangeError, CodeOf(wrapped))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsRange(Range("out of range")))
	assert.False(t, IsRange(Validation("bad parameter")))
	assert.True(t, IsValidation(Validation("bad parameter")))
	assert.False(t, IsValidation(stderrors.New("plain")))
}
