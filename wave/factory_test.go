package wave

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soundlab/wave-factory/constant"
	"github.com/soundlab/wave-factory/note"
)

func newTestFactory(t *testing.T) (*Factory, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFactory(WithOutputDir(dir)), dir
}

// TestCreateNote verifies generation length, amplitude bound and the
// WAV side effect
func TestCreateNote(t *testing.T) {
	factory, dir := newTestFactory(t)

	samples, err := factory.CreateNote("a4")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if len(samples) != constant.SoundArrayLen {
		t.Errorf("Expected %d samples, got %d", constant.SoundArrayLen, len(samples))
	}

	for i, s := range samples {
		if s > constant.MaxAmplitude || s < -constant.MaxAmplitude {
			t.Fatalf("Sample %d out of amplitude bound: %d", i, s)
		}
	}

	if factory.Note() != "a4" {
		t.Errorf("Expected note a4, got %q", factory.Note())
	}

	if _, err := os.Stat(filepath.Join(dir, "a4_sin.wav")); err != nil {
		t.Errorf("Expected a4_sin.wav to exist: %v", err)
	}
}

// TestCreateNoteSharpFilename verifies the '#' to 's' substitution
func TestCreateNoteSharpFilename(t *testing.T) {
	factory, dir := newTestFactory(t)

	if _, err := factory.CreateNote("c#4"); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "cs4_sin.wav")); err != nil {
		t.Errorf("Expected cs4_sin.wav to exist: %v", err)
	}
}

// TestCreateNoteCustomName verifies WithName overrides the derived name
func TestCreateNoteCustomName(t *testing.T) {
	factory, dir := newTestFactory(t)

	if _, err := factory.CreateNote("a4", WithName("tuning-fork")); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "tuning-fork.wav")); err != nil {
		t.Errorf("Expected tuning-fork.wav to exist: %v", err)
	}
}

// TestCreateNoteUnknown verifies ErrUnknownNote propagates and leaves
// no wave behind
func TestCreateNoteUnknown(t *testing.T) {
	factory, _ := newTestFactory(t)

	_, err := factory.CreateNote("z9")
	if !errors.Is(err, note.ErrUnknownNote) {
		t.Fatalf("Expected ErrUnknownNote, got %v", err)
	}

	if factory.Samples() != nil {
		t.Error("Expected no wave after failed generation")
	}
}

// TestCreateNoteCustomTimeBase verifies an alternate time base drives
// the output length
func TestCreateNoteCustomTimeBase(t *testing.T) {
	factory, _ := newTestFactory(t)

	tb := NewTimeBase(1.0, constant.SamplingRate)
	samples, err := factory.CreateNote("a4", WithTimeBase(tb))
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if len(samples) != constant.SamplingRate {
		t.Errorf("Expected %d samples, got %d", constant.SamplingRate, len(samples))
	}
}

// TestSineDeterministic verifies repeated sampling is identical
func TestSineDeterministic(t *testing.T) {
	tb := NewTimeBase(1.0, 1000)

	a := Sine(tb, 440.0)
	b := Sine(tb, 440.0)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// TestQuantizeTruncation verifies narrowing truncates toward zero
func TestQuantizeTruncation(t *testing.T) {
	got := quantize([]float64{1.9, -1.9, 0.4, -0.4, 8191.99})
	expected := []int16{1, -1, 0, 0, 8191}

	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected %d at index %d, got %d", expected[i], i, got[i])
		}
	}
}

// TestSaveWaveNoWave verifies saving without a wave is a no-op
func TestSaveWaveNoWave(t *testing.T) {
	factory, dir := newTestFactory(t)

	path := filepath.Join(dir, "nothing.txt")
	if err := factory.SaveWave(path, "txt"); err != nil {
		t.Fatalf("Expected no-op, got error: %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Error("Expected no file to be written")
	}
}

// TestSaveLoadTxtRoundTrip verifies text persistence is lossless
func TestSaveLoadTxtRoundTrip(t *testing.T) {
	factory, dir := newTestFactory(t)

	original, err := factory.CreateNote("g4")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	path := filepath.Join(dir, "g4_sin.txt")
	if err := factory.SaveWave(path, "txt"); err != nil {
		t.Fatalf("SaveWave failed: %v", err)
	}

	loaded := NewFactory()
	if err := loaded.LoadTxt(path); err != nil {
		t.Fatalf("LoadTxt failed: %v", err)
	}

	got := loaded.Samples()
	if len(got) != len(original) {
		t.Fatalf("Expected %d samples, got %d", len(original), len(got))
	}
	for i := range original {
		if got[i] != original[i] {
			t.Fatalf("Sample %d differs: %d vs %d", i, original[i], got[i])
		}
	}

	// the note name is not restored by a load
	if loaded.Note() != "" {
		t.Errorf("Expected empty note after load, got %q", loaded.Note())
	}
}

// TestSaveWaveFormatSelector verifies the wav format selector is
// case-insensitive
func TestSaveWaveFormatSelector(t *testing.T) {
	factory, dir := newTestFactory(t)

	if _, err := factory.CreateNote("a4"); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	path := filepath.Join(dir, "upper.wav")
	if err := factory.SaveWave(path, "WAV"); err != nil {
		t.Fatalf("SaveWave failed: %v", err)
	}

	loaded := NewFactory()
	if err := loaded.LoadWAV(path); err != nil {
		t.Errorf("Expected a WAV container for format WAV: %v", err)
	}
}

// TestLoadTxtMissing verifies a missing file is an error
func TestLoadTxtMissing(t *testing.T) {
	factory, dir := newTestFactory(t)

	err := factory.LoadTxt(filepath.Join(dir, "absent.txt"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

// TestLoadTxtUnparseable verifies parse failures are swallowed and the
// previous wave is retained
func TestLoadTxtUnparseable(t *testing.T) {
	factory, dir := newTestFactory(t)

	original, err := factory.CreateNote("a4")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	testCases := []struct {
		name    string
		content string
	}{
		{"garbage", "not-a-number\n"},
		{"float", "12.5\n"},
		{"overflow", "40000\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".txt")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}

			if err := factory.LoadTxt(path); err != nil {
				t.Fatalf("Expected swallowed parse failure, got error: %v", err)
			}

			got := factory.Samples()
			if len(got) != len(original) {
				t.Fatalf("Expected previous wave to be retained, got %d samples", len(got))
			}
		})
	}
}

// TestLoadWAVRoundTrip verifies the generated WAV file reads back
// elementwise equal
func TestLoadWAVRoundTrip(t *testing.T) {
	factory, dir := newTestFactory(t)

	original, err := factory.CreateNote("c#3")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	loaded := NewFactory()
	if err := loaded.LoadWAV(filepath.Join(dir, "cs3_sin.wav")); err != nil {
		t.Fatalf("LoadWAV failed: %v", err)
	}

	got := loaded.Samples()
	if len(got) != len(original) {
		t.Fatalf("Expected %d samples, got %d", len(original), len(got))
	}
	for i := range original {
		if got[i] != original[i] {
			t.Fatalf("Sample %d differs: %d vs %d", i, original[i], got[i])
		}
	}
}

// TestDescribe verifies the wave summary contents
func TestDescribe(t *testing.T) {
	factory, _ := newTestFactory(t)

	if _, err := factory.CreateNote("a4"); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	got := factory.Describe()
	for _, want := range []string{"a4", "5 seconds", "44100 Hz", "220500", "mean amplitude"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected describe output to contain %q, got:\n%s", want, got)
		}
	}
}

// TestDescribeNoWave verifies the empty factory message
func TestDescribeNoWave(t *testing.T) {
	factory := NewFactory()

	got := factory.Describe()
	if !strings.Contains(got, "no sound wave") {
		t.Errorf("Expected a no-wave message, got %q", got)
	}
}
