package wave

import (
	"fmt"

	"github.com/soundlab/wave-factory/constant"
)

// Source is a normalization input: either a raw sample sequence or a
// factory holding its current wave.
type Source interface {
	waveSamples() []int16
}

// Samples adapts a raw sample sequence to a Source.
type Samples []int16

func (s Samples) waveSamples() []int16 { return s }

func (f *Factory) waveSamples() []int16 { return f.samples }

// Normalize rescales a batch of waves to a common length and peak
// amplitude. Every result is truncated to the shortest input, then
// scaled so its loudest sample reaches MaxAmplitude; an all-zero wave
// passes through unchanged. Results are returned in input order.
// An empty input is reported and yields a nil result, not an error.
// A factory source with no current wave is an error.
func (f *Factory) Normalize(sources ...Source) ([][]int16, error) {
	if len(sources) == 0 {
		f.log.Infow("no waves provided")
		return nil, nil
	}

	minLength := -1
	for i, src := range sources {
		samples := src.waveSamples()
		if samples == nil {
			return nil, fmt.Errorf("normalize: source %d: %w", i, ErrNoWave)
		}
		if minLength < 0 || len(samples) < minLength {
			minLength = len(samples)
		}
	}

	normalized := make([][]int16, 0, len(sources))
	for _, src := range sources {
		trimmed := src.waveSamples()[:minLength]

		var peak int
		for _, s := range trimmed {
			abs := int(s)
			if abs < 0 {
				abs = -abs
			}
			if abs > peak {
				peak = abs
			}
		}

		out := make([]int16, minLength)
		if peak == 0 {
			copy(out, trimmed)
		} else {
			scale := float64(constant.MaxAmplitude) / float64(peak)
			for i, s := range trimmed {
				out[i] = int16(float64(s) * scale)
			}
		}
		normalized = append(normalized, out)
	}
	return normalized, nil
}
