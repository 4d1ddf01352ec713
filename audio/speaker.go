package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Speaker routes a Player to the default audio device.
type Speaker struct {
	player *Player
}

// StartSpeaker opens the audio device at the player's rate and starts
// playing its mixer. From then on the player synchronises with the speaker.
func StartSpeaker(p *Player, buffer time.Duration) (*Speaker, error) {
	if err := speaker.Init(p.rate, p.rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	p.lock = speakerLock{}
	speaker.Play(p.mixer)
	return &Speaker{player: p}, nil
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.player.Stop()
	speaker.Clear()
	speaker.Close()
}

var _ beep.Streamer = (*Player)(nil)
