// Package audio plays short confirmation sounds for image exports
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

const (
	successFreq     = 880.0
	successOvertone = 1760.0
	successDuration = 180 * time.Millisecond
	failureFreq     = 120.0
	failureDuration = 150 * time.Millisecond
	soundAttack     = 5 * time.Millisecond
	soundRelease    = 60 * time.Millisecond
)

// Chime signals save outcomes through the speaker
// A chime whose speaker never initialized stays silent
type Chime struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	volume      float64
}

// NewChime creates a chime; volume is clamped to 0.0-1.0
func NewChime(enabled bool, volume float64) *Chime {
	return &Chime{enabled: enabled, volume: min(1, max(0, volume))}
}

// Init opens the speaker; disabled chimes skip it
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Active reports whether sounds will reach the speaker
func (c *Chime) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && c.initialized
}

// Saved plays a bell for a successful export and a buzz for a failed one
func (c *Chime) Saved(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || !c.initialized {
		return
	}
	speaker.Play(SaveSound(err == nil, c.volume))
}

// Close releases the speaker
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// SaveSound builds the outcome sound at the given volume
func SaveSound(ok bool, volume float64) beep.Streamer {
	if !ok {
		buzz := NewTone(failureFreq, failureDuration, WaveSaw, sampleRate)
		return withVolume(NewFade(buzz, failureDuration, soundAttack, soundRelease, sampleRate), volume)
	}

	fund := NewFade(NewTone(successFreq, successDuration, WaveSine, sampleRate),
		successDuration, soundAttack, successDuration-soundAttack, sampleRate)
	over := NewFade(NewTone(successOvertone, successDuration, WaveSine, sampleRate),
		successDuration, soundAttack, soundRelease, sampleRate)
	return withVolume(beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3)), volume)
}
