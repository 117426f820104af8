package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
)

// drifting builds a signal with a known linear drift on top of a DC
// level, with an embedded time axis at 100 Hz.
func drifting(t *testing.T, slope, dc float64) (*channels.Collection, []float64) {
	t.Helper()
	n := 1000
	timeAxis := make([]float64, n)
	signal := make([]float64, n)
	for i := range signal {
		timeAxis[i] = float64(i) / 100
		signal[i] = dc + slope*timeAxis[i]
	}
	c := channels.NewNamed()
	c.SetChannel(channels.TimeChannel, timeAxis)
	c.SetChannel("Ch1", signal)
	return c, signal
}

func timeRange(start, end float64) Params {
	return Params{
		Method:       MethodTimeRange,
		FitStartTime: start,
		FitEndTime:   end,
		Correction:   CorrectionLinear,
		SamplingRate: 100,
	}
}

func TestLinearDriftRemoved(t *testing.T) {
	c, _ := drifting(t, 0.5, 2.0)
	e := New(nil)

	out, err := e.Process(c, timeRange(0, 9.99), nil)
	require.NoError(t, err)

	got, ok := out.Channel("Ch1")
	require.True(t, ok)

	// Fully detrended with no mean preservation: flat around zero
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestLinearPreserveMeanKeepsIntercept(t *testing.T) {
	c, _ := drifting(t, 0.5, 2.0)
	e := New(nil)

	p := timeRange(0, 9.99)
	p.PreserveMean = true
	out, err := e.Process(c, p, nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	// Drift removed, DC level restored to the fitted intercept
	for _, v := range got {
		assert.InDelta(t, 2.0, v, 1e-9)
	}
}

func TestFlatSignalIdempotent(t *testing.T) {
	c, orig := drifting(t, 0, 3.0)
	e := New(nil)

	p := timeRange(0, 9.99)
	p.PreserveMean = true
	out, err := e.Process(c, p, nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	assert.InDelta(t, stat.Mean(orig, nil), stat.Mean(got, nil), 1e-9)
	for i, v := range got {
		assert.InDelta(t, orig[i], v, 1e-9)
	}
}

func TestTrendEvaluatedBeyondFitRegion(t *testing.T) {
	c, _ := drifting(t, 1.0, 0)
	e := New(nil)

	// Fit on the first two seconds only; the trend must still be
	// subtracted across the full ten seconds
	out, err := e.Process(c, timeRange(0, 2.0), nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	assert.InDelta(t, 0, got[len(got)-1], 1e-6)
}

func TestFirstNSecondsMethod(t *testing.T) {
	c, _ := drifting(t, 0.5, 1.0)
	e := New(nil)

	out, err := e.Process(c, Params{
		Method:        MethodFirstNSeconds,
		FirstNSeconds: 3.0,
		Correction:    CorrectionLinear,
		SamplingRate:  100,
	}, nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	// A pure linear drift is captured exactly from any sub-window
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-6)
	}
}

func TestPolynomialCorrections(t *testing.T) {
	n := 1000
	timeAxis := make([]float64, n)
	quad := make([]float64, n)
	cubic := make([]float64, n)
	for i := range quad {
		x := float64(i) / 100
		timeAxis[i] = x
		quad[i] = 1 + 0.2*x - 0.05*x*x
		cubic[i] = 2 - 0.1*x + 0.03*x*x - 0.004*x*x*x
	}
	c := channels.NewNamed()
	c.SetChannel(channels.TimeChannel, timeAxis)
	c.SetChannel("Quad", quad)
	c.SetChannel("Cubic", cubic)

	e := New(nil)

	p := timeRange(0, 9.99)
	p.Correction = CorrectionPoly2
	p.Channel = "Quad"
	out, err := e.Process(c, p, nil)
	require.NoError(t, err)
	got, _ := out.Channel("Quad")
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-6)
	}

	p.Correction = CorrectionPoly3
	p.Channel = "Cubic"
	out, err = e.Process(c, p, nil)
	require.NoError(t, err)
	got, _ = out.Channel("Cubic")
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-6)
	}
}

func TestPolynomialPreserveMeanUsesSignalMean(t *testing.T) {
	n := 1000
	signal := make([]float64, n)
	for i := range signal {
		x := float64(i) / 100
		signal[i] = 5 + 0.1*x*x
	}
	c := channels.NewNamed()
	c.SetChannel("Ch1", signal)

	e := New(nil)
	p := timeRange(0, 9.99)
	p.Correction = CorrectionPoly2
	p.PreserveMean = true
	out, err := e.Process(c, p, nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	assert.InDelta(t, stat.Mean(signal, nil), stat.Mean(got, nil), 1e-6)
}

func TestUnknownCorrectionFallsBackToLinear(t *testing.T) {
	c, _ := drifting(t, 0.5, 0)
	e := New(nil)

	p := timeRange(0, 9.99)
	p.Correction = "spline"
	out, err := e.Process(c, p, nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestRelativeTimeInvariantToOffset(t *testing.T) {
	n := 1000
	timeAxis := make([]float64, n)
	signal := make([]float64, n)
	for i := range signal {
		// Axis starts at 500 s; the fit range is still expressed in
		// relative seconds from the first sample
		timeAxis[i] = 500 + float64(i)/100
		signal[i] = 1 + 0.5*(timeAxis[i]-500)
	}
	c := channels.NewNamed()
	c.SetChannel(channels.TimeChannel, timeAxis)
	c.SetChannel("Ch1", signal)

	e := New(nil)
	out, err := e.Process(c, timeRange(0, 9.99), nil)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestReferenceAxisPrecedence(t *testing.T) {
	n := 1000
	embedded := make([]float64, n)
	ref := make([]float64, n)
	signal := make([]float64, n)
	for i := range signal {
		embedded[i] = float64(i) // bogus embedded axis
		ref[i] = float64(i) / 100
		signal[i] = 0.5 * ref[i]
	}
	c := channels.NewNamed()
	c.SetChannel(channels.TimeChannel, embedded)
	c.SetChannel("Ch1", signal)

	e := New(nil)
	out, err := e.Process(c, timeRange(0, 9.99), ref)
	require.NoError(t, err)

	got, _ := out.Channel("Ch1")
	for _, v := range got {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestMatrixPerColumn(t *testing.T) {
	n := 500
	col1 := make([]float64, n)
	col2 := make([]float64, n)
	for i := range col1 {
		x := float64(i) / 100
		col1[i] = 1 + x
		col2[i] = -2 - 3*x
	}
	m, err := channels.NewMatrix([][]float64{col1, col2})
	require.NoError(t, err)

	e := New(nil)
	out, err := e.Process(m, timeRange(0, 4.99), nil)
	require.NoError(t, err)

	for _, col := range out.Columns() {
		for _, v := range col {
			assert.InDelta(t, 0, v, 1e-9)
		}
	}
}

func TestEmptyFitRegionFails(t *testing.T) {
	c, _ := drifting(t, 0.5, 0)
	e := New(nil)

	_, err := e.Process(c, timeRange(100, 200), nil)
	require.Error(t, err)
	assert.True(t, sperrors.IsRange(err))
	assert.Contains(t, err.Error(), "fit range")

	_, err = e.Process(c, Params{
		Method:        MethodFirstNSeconds,
		FirstNSeconds: -1,
		Correction:    CorrectionLinear,
		SamplingRate:  100,
	}, nil)
	require.Error(t, err)
	assert.True(t, sperrors.IsRange(err))
	assert.Contains(t, err.Error(), "first")
}

func TestTimeChannelUntouched(t *testing.T) {
	c, _ := drifting(t, 0.5, 2.0)
	origTime, _ := c.Channel(channels.TimeChannel)

	e := New(nil)
	out, err := e.Process(c, timeRange(0, 9.99), nil)
	require.NoError(t, err)

	gotTime, _ := out.Channel(channels.TimeChannel)
	assert.Equal(t, origTime, gotTime)
}

func TestNilCollection(t *testing.T) {
	e := New(nil)
	_, err := e.Process(nil, timeRange(0, 1), nil)
	assert.Error(t, err)
}
