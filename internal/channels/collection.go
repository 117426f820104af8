package channels

import "fmt"

// TimeChannel is the reserved, case-sensitive name of the time axis channel.
const TimeChannel = "Time"

// Form identifies the underlying representation of a Collection.
type Form int

const (
	// FormNamed is an ordered mapping from channel name to samples.
	FormNamed Form = iota
	// FormVector is a single unnamed series.
	FormVector
	// FormMatrix is column-major 2-D data: rows are samples, columns are
	// channels.
	FormMatrix
)

// String returns the human-readable form name.
func (f Form) String() string {
	switch f {
	case FormNamed:
		return "named"
	case FormVector:
		return "vector"
	case FormMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// Collection is the uniform representation of multi-channel time-series
// data. A Collection is created by a loader or a previous processing step;
// engines treat it as immutable and return new collections.
type Collection struct {
	form    Form
	names   []string
	data    map[string][]float64
	vector  []float64
	columns [][]float64
}

// NewNamed creates an empty named collection. Channels are added with
// SetChannel and keep their insertion order.
func NewNamed() *Collection {
	return &Collection{
		form: FormNamed,
		data: make(map[string][]float64),
	}
}

// NewVector creates a collection holding a single series.
func NewVector(samples []float64) *Collection {
	return &Collection{form: FormVector, vector: samples}
}

// NewMatrix creates a collection from column-major 2-D data. All columns
// must have equal length.
func NewMatrix(columns [][]float64) (*Collection, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("matrix collection requires at least one column")
	}
	n := len(columns[0])
	for i, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("matrix column %d has %d samples, expected %d", i, len(col), n)
		}
	}
	return &Collection{form: FormMatrix, columns: columns}, nil
}

// Form returns the representation of the collection.
func (c *Collection) Form() Form {
	return c.form
}

// Names returns the channel names of a named collection in insertion
// order. The returned slice is a copy.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// HasChannel reports whether a named collection contains the channel.
func (c *Collection) HasChannel(name string) bool {
	_, ok := c.data[name]
	return ok
}

// Channel returns the samples of a named channel.
func (c *Collection) Channel(name string) ([]float64, bool) {
	samples, ok := c.data[name]
	return samples, ok
}

// SetChannel stores samples under name, appending the name to the channel
// order when it is new. The slice is stored as-is; callers that need
// isolation should pass a copy.
func (c *Collection) SetChannel(name string, samples []float64) {
	if _, exists := c.data[name]; !exists {
		c.names = append(c.names, name)
	}
	c.data[name] = samples
}

// Vector returns the series of a vector collection.
func (c *Collection) Vector() []float64 {
	return c.vector
}

// Columns returns the column-major data of a matrix collection.
func (c *Collection) Columns() [][]float64 {
	return c.columns
}

// Len returns the number of samples per channel. For a named collection
// with diverging channel lengths it returns the length of the first
// non-Time channel, falling back to the Time channel.
func (c *Collection) Len() int {
	switch c.form {
	case FormVector:
		return len(c.vector)
	case FormMatrix:
		if len(c.columns) == 0 {
			return 0
		}
		return len(c.columns[0])
	default:
		for _, name := range c.names {
			if name != TimeChannel {
				return len(c.data[name])
			}
		}
		if t, ok := c.data[TimeChannel]; ok {
			return len(t)
		}
		return 0
	}
}

// NumChannels returns the channel count, including any Time channel.
func (c *Collection) NumChannels() int {
	switch c.form {
	case FormVector:
		return 1
	case FormMatrix:
		return len(c.columns)
	default:
		return len(c.names)
	}
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	out := &Collection{form: c.form}
	switch c.form {
	case FormVector:
		out.vector = cloneSamples(c.vector)
	case FormMatrix:
		out.columns = make([][]float64, len(c.columns))
		for i, col := range c.columns {
			out.columns[i] = cloneSamples(col)
		}
	default:
		out.names = make([]string, len(c.names))
		copy(out.names, c.names)
		out.data = make(map[string][]float64, len(c.data))
		for name, samples := range c.data {
			out.data[name] = cloneSamples(samples)
		}
	}
	return out
}

// Map builds a new collection of the same form by applying fn to every
// data series. For named collections the "Time" channel is copied through
// untouched and never passed to fn. Vector and matrix series are passed
// with an empty name. fn receives a private copy it may edit in place.
func (c *Collection) Map(fn func(name string, samples []float64) ([]float64, error)) (*Collection, error) {
	switch c.form {
	case FormVector:
		out, err := fn("", cloneSamples(c.vector))
		if err != nil {
			return nil, err
		}
		return NewVector(out), nil

	case FormMatrix:
		cols := make([][]float64, len(c.columns))
		for i, col := range c.columns {
			out, err := fn("", cloneSamples(col))
			if err != nil {
				return nil, err
			}
			cols[i] = out
		}
		return NewMatrix(cols)

	default:
		result := NewNamed()
		for _, name := range c.names {
			samples := c.data[name]
			if name == TimeChannel {
				result.SetChannel(name, cloneSamples(samples))
				continue
			}
			out, err := fn(name, cloneSamples(samples))
			if err != nil {
				return nil, err
			}
			result.SetChannel(name, out)
		}
		return result, nil
	}
}

func cloneSamples(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}
