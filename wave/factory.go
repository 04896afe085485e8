// Package wave generates, persists and normalizes quantized sine
// waves for named musical notes.
package wave

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/soundlab/wave-factory/constant"
	"github.com/soundlab/wave-factory/note"
	"github.com/soundlab/wave-factory/waveio"
)

// ErrNoWave indicates an operation that needs a current wave found none.
var ErrNoWave = errors.New("no sound wave loaded")

// Factory owns a single current wave: the result of the most recent
// generate or load call. Generation replaces the wave wholesale, it is
// never mutated in place.
type Factory struct {
	timeBase TimeBase
	samples  []int16
	note     string
	outDir   string
	log      *zap.SugaredLogger
}

// Option configures a Factory.
type Option func(*Factory)

// WithOutputDir sets the directory generated files are written to.
func WithOutputDir(dir string) Option {
	return func(f *Factory) { f.outDir = dir }
}

// WithLogger sets the logger used for diagnostics that are reported
// rather than returned (save no-ops, swallowed load failures).
func WithLogger(log *zap.SugaredLogger) Option {
	return func(f *Factory) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFactory creates a factory with the fixed default time base and
// no current wave.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		timeBase: DefaultTimeBase(),
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Samples returns the current wave, or nil when nothing has been
// generated or loaded.
func (f *Factory) Samples() []int16 { return f.samples }

// Note returns the name of the note the current wave was generated
// from. It is empty for loaded waves and is not cleared by a load.
func (f *Factory) Note() string { return f.note }

// TimeBase returns the factory's default time base.
func (f *Factory) TimeBase() TimeBase { return f.timeBase }

// Sine evaluates MaxAmplitude * sin(2π f t) over tb.
func Sine(tb TimeBase, freq float64) []float64 {
	out := make([]float64, len(tb))
	for i, t := range tb {
		out[i] = constant.MaxAmplitude * math.Sin(2*math.Pi*freq*t)
	}
	return out
}

// quantize narrows real-valued samples to int16, truncating toward
// zero. Generated amplitudes stay within MaxAmplitude so no clipping
// is applied.
func quantize(in []float64) []int16 {
	out := make([]int16, len(in))
	for i, v := range in {
		out[i] = int16(v)
	}
	return out
}

// createParams holds the optional parts of a CreateNote call.
type createParams struct {
	name     string
	timeBase TimeBase
}

// CreateOption configures a single CreateNote call.
type CreateOption func(*createParams)

// WithName overrides the derived output file name. The ".wav"
// extension is appended.
func WithName(name string) CreateOption {
	return func(p *createParams) { p.name = name }
}

// WithTimeBase evaluates the note over an alternate time base instead
// of the factory default.
func WithTimeBase(tb TimeBase) CreateOption {
	return func(p *createParams) { p.timeBase = tb }
}

// CreateNote generates the sine wave for a note, stores it as the
// current wave and writes it to a WAV file. Without WithName the file
// is "<note>_sin.wav" with '#' replaced by 's' ("c#4" → "cs4_sin.wav").
// The stored samples are returned.
func (f *Factory) CreateNote(noteName string, opts ...CreateOption) ([]int16, error) {
	var p createParams
	for _, opt := range opts {
		opt(&p)
	}

	freq, err := note.Frequency(noteName)
	if err != nil {
		return nil, err
	}

	tb := p.timeBase
	if tb == nil {
		tb = f.timeBase
	}

	f.note = noteName
	f.samples = quantize(Sine(tb, freq))

	fileName := p.name + ".wav"
	if p.name == "" {
		fileName = strings.ReplaceAll(noteName, "#", "s") + "_sin.wav"
	}
	path := filepath.Join(f.outDir, fileName)

	if err := waveio.WriteWAV(path, f.samples, constant.SamplingRate); err != nil {
		return nil, err
	}
	f.log.Debugw("note generated", "note", noteName, "freq", freq, "file", path)
	return f.samples, nil
}

// SaveWave persists the current wave. Format "wav" (any case) writes a
// PCM WAV container; every other value writes a plain-text dump.
// With no current wave the call is a reported no-op.
func (f *Factory) SaveWave(path, format string) error {
	if f.samples == nil {
		f.log.Infow("no sound wave to save", "path", path)
		return nil
	}
	if strings.EqualFold(format, "wav") {
		if err := waveio.WriteWAV(path, f.samples, constant.SamplingRate); err != nil {
			return err
		}
		f.log.Infow("wave saved", "format", "wav", "path", path)
		return nil
	}
	if err := waveio.WriteText(path, f.samples); err != nil {
		return err
	}
	f.log.Infow("wave saved", "format", "txt", "path", path)
	return nil
}

// LoadTxt replaces the current wave with one read from a text dump.
// A missing file is an error. Content that does not parse as 16-bit
// integers is reported through the logger and leaves the previous
// wave untouched; the call itself returns nil. The note name is not
// restored by a load.
func (f *Factory) LoadTxt(path string) error {
	samples, err := waveio.ReadText(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load wave: %w", err)
		}
		f.log.Errorw("load wave failed, keeping previous wave", "path", path, "error", err)
		return nil
	}
	f.samples = samples
	f.log.Infow("wave loaded", "path", path, "samples", len(samples))
	return nil
}

// LoadWAV replaces the current wave with the samples of a mono 16-bit
// WAV file. Unlike LoadTxt, all failures propagate.
func (f *Factory) LoadWAV(path string) error {
	samples, rate, err := waveio.ReadWAV(path)
	if err != nil {
		return err
	}
	if rate != constant.SamplingRate {
		f.log.Warnw("sample rate differs from factory rate", "path", path, "rate", rate)
	}
	f.samples = samples
	f.log.Infow("wave loaded", "path", path, "samples", len(samples))
	return nil
}

// Describe returns a multi-line summary of the current wave, or a
// single "no sound wave" line when nothing is loaded.
func (f *Factory) Describe() string {
	if len(f.samples) == 0 {
		return "no sound wave is loaded or generated yet"
	}

	maxS, minS := f.samples[0], f.samples[0]
	var sum float64
	for _, s := range f.samples {
		if s > maxS {
			maxS = s
		}
		if s < minS {
			minS = s
		}
		sum += float64(s)
	}
	mean := sum / float64(len(f.samples))

	noteName := f.note
	if noteName == "" {
		noteName = "(none)"
	}

	return fmt.Sprintf(
		"details for the wave generated from note %q:\n"+
			"duration: %d seconds\n"+
			"sampling rate: %d Hz\n"+
			"number of samples: %d\n"+
			"max amplitude: %d\n"+
			"min amplitude: %d\n"+
			"mean amplitude: %.2f",
		noteName, constant.DurationSeconds, constant.SamplingRate,
		len(f.samples), maxS, minS, mean)
}
