// Package entropytest provides a scripted entropy.Source for tests.
package entropytest

// Fixed replays a scripted sequence of values. Intn reduces each value
// modulo n; Float64 maps it into [0, 1) by dividing by 1000. When the
// script runs out it starts over.
type Fixed struct {
	values []int
	pos    int
}

// NewFixed creates a Fixed source over values. An empty script always
// yields 0.
func NewFixed(values ...int) *Fixed {
	return &Fixed{values: values}
}

func (f *Fixed) next() int {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.pos%len(f.values)]
	f.pos++
	if v < 0 {
		v = -v
	}
	return v
}

// Intn returns the next scripted value modulo n.
func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("entropytest: invalid argument to Intn")
	}
	return f.next() % n
}

// Float64 returns the next scripted value as a fraction in [0, 1).
func (f *Fixed) Float64() float64 {
	return float64(f.next()%1000) / 1000
}

// Draws reports how many values have been consumed.
func (f *Fixed) Draws() int {
	return f.pos
}
