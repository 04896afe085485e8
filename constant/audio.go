package constant

// Synthesis Format
const (
	SamplingRate    = 44100 // Hz
	DurationSeconds = 5
	SoundArrayLen   = SamplingRate * DurationSeconds // 220500

	AudioChannels = 1
	AudioBitDepth = 16
)

// MaxAmplitude is the nominal peak of a generated or normalized wave.
// 2^13 leaves headroom below int16 clipping.
const MaxAmplitude = 1 << 13 // 8192
