// Package playback plays rendered waves through the system speaker.
package playback

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/soundlab/wave-factory/constant"
)

const sampleRate = beep.SampleRate(constant.SamplingRate)

// waveStreamer streams a finished int16 wave as audio. Samples are
// mapped to [-1, 1) and duplicated to both channels.
type waveStreamer struct {
	samples []int16
	pos     int
}

// NewStreamer wraps quantized samples as a finite beep.Streamer.
func NewStreamer(samples []int16) beep.Streamer {
	return &waveStreamer{samples: samples}
}

func (w *waveStreamer) Stream(out [][2]float64) (n int, ok bool) {
	for i := range out {
		if w.pos >= len(w.samples) {
			return i, i > 0
		}
		v := float64(w.samples[w.pos]) / (1 << 15)
		out[i][0] = v
		out[i][1] = v
		w.pos++
	}
	return len(out), true
}

func (w *waveStreamer) Err() error { return nil }

// Player owns the speaker and a mixer that queued waves are added to.
// All operations are safe to call before Initialize and after Cleanup;
// without a working audio device playback degrades to a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player. Initialize must succeed before any
// sound is audible.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a wave for playback and returns immediately.
func (p *Player) Play(samples []int16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || len(samples) == 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(NewStreamer(samples))
	speaker.Unlock()
}

// PlayAndWait queues a wave and blocks until it has drained.
func (p *Player) PlayAndWait(samples []int16) {
	p.mu.Lock()
	if !p.initialized || len(samples) == 0 {
		p.mu.Unlock()
		return
	}
	done := make(chan struct{})
	speaker.Lock()
	p.mixer.Add(beep.Seq(NewStreamer(samples), beep.Callback(func() {
		close(done)
	})))
	speaker.Unlock()
	p.mu.Unlock()

	<-done
}

// Cleanup silences the mixer. The speaker itself has no close, so
// clearing the streamers is the whole shutdown.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
