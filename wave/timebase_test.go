package wave

import (
	"math"
	"testing"

	"github.com/soundlab/wave-factory/constant"
)

// TestDefaultTimeBaseLength verifies the fixed time base spans the
// full sample count
func TestDefaultTimeBaseLength(t *testing.T) {
	tb := DefaultTimeBase()
	if len(tb) != constant.SoundArrayLen {
		t.Errorf("Expected %d timestamps, got %d", constant.SoundArrayLen, len(tb))
	}
}

// TestTimeBaseEndpoints verifies both ends are inclusive
func TestTimeBaseEndpoints(t *testing.T) {
	tb := NewTimeBase(5.0, 220500)

	if tb[0] != 0 {
		t.Errorf("Expected first timestamp 0, got %v", tb[0])
	}
	if tb[len(tb)-1] != 5.0 {
		t.Errorf("Expected last timestamp 5.0, got %v", tb[len(tb)-1])
	}
}

// TestTimeBaseUniformSpacing verifies uniform steps
func TestTimeBaseUniformSpacing(t *testing.T) {
	tb := NewTimeBase(1.0, 101)
	step := 1.0 / 100

	for i := 1; i < len(tb); i++ {
		got := tb[i] - tb[i-1]
		if math.Abs(got-step) > 1e-12 {
			t.Fatalf("Expected step %v at index %d, got %v", step, i, got)
		}
	}
}

// TestTimeBaseDegenerate verifies tiny sizes do not divide by zero
func TestTimeBaseDegenerate(t *testing.T) {
	if got := len(NewTimeBase(5.0, 0)); got != 0 {
		t.Errorf("Expected empty time base, got %d entries", got)
	}
	if got := len(NewTimeBase(5.0, 1)); got != 1 {
		t.Errorf("Expected single entry, got %d", got)
	}
}
