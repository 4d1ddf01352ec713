// Package audio plays one-shot gallery cues through a beep mixer.
package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/plus3/xrgallery/gallery"
)

// Source resolves a cue name to decoded audio. *assets.Loader implements it.
type Source interface {
	Sound(name string) (*beep.Buffer, bool)
}

// Player plays each cue as a one-shot. Replaying a cue that is still playing
// stops it and starts over; cues are never queued or layered.
type Player struct {
	source Source
	rate   beep.SampleRate
	lock   sync.Locker

	mixer   *beep.Mixer
	playing map[string]*beep.Ctrl
	skipped int
}

// NewPlayer mixes at rate. Buffers recorded at another rate are resampled.
func NewPlayer(source Source, rate beep.SampleRate) *Player {
	return &Player{
		source:  source,
		rate:    rate,
		lock:    &sync.Mutex{},
		mixer:   &beep.Mixer{},
		playing: make(map[string]*beep.Ctrl),
	}
}

// Play implements gallery.SoundPlayer.
func (p *Player) Play(s gallery.Sound) {
	p.PlayNamed(s.String())
}

// PlayNamed starts the cue called name. Cues whose audio is not loaded yet
// are skipped silently.
func (p *Player) PlayNamed(name string) {
	var buffer *beep.Buffer
	if p.source != nil {
		buffer, _ = p.source.Sound(name)
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if buffer == nil {
		p.skipped++
		return
	}

	if prev, ok := p.playing[name]; ok {
		prev.Streamer = nil
	}

	var stream beep.Streamer = buffer.Streamer(0, buffer.Len())
	if rate := buffer.Format().SampleRate; rate != p.rate {
		stream = beep.Resample(4, rate, p.rate, stream)
	}
	ctrl := &beep.Ctrl{Streamer: stream}
	p.playing[name] = ctrl
	p.mixer.Add(ctrl)
}

// Stop silences every cue.
func (p *Player) Stop() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for name, ctrl := range p.playing {
		ctrl.Streamer = nil
		delete(p.playing, name)
	}
	p.mixer.Clear()
}

// Active returns the number of cues in the mixer, including ones stopped
// since the mixer last pulled samples.
func (p *Player) Active() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.mixer.Len()
}

// Skipped returns how many cues were dropped because their audio was missing.
func (p *Player) Skipped() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.skipped
}

// Stream pulls mixed samples. Hosts without a speaker (tests, offline
// rendering) call it directly.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.mixer.Stream(samples)
}

func (p *Player) Err() error { return nil }
