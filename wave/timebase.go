package wave

import "github.com/soundlab/wave-factory/constant"

// TimeBase is the ordered sequence of timestamps a waveform is
// evaluated over.
type TimeBase []float64

// NewTimeBase returns n timestamps uniformly spaced over
// [0, seconds], inclusive at both ends.
func NewTimeBase(seconds float64, n int) TimeBase {
	tb := make(TimeBase, n)
	if n < 2 {
		return tb
	}
	step := seconds / float64(n-1)
	for i := range tb {
		tb[i] = float64(i) * step
	}
	// avoid accumulated float error at the endpoint
	tb[n-1] = seconds
	return tb
}

// DefaultTimeBase returns the fixed 5-second, 44.1kHz time base
// shared by all generation on a factory.
func DefaultTimeBase() TimeBase {
	return NewTimeBase(constant.DurationSeconds, constant.SoundArrayLen)
}
