package gallery

import "github.com/plus3/xrgallery/xr"

// Sound names a one-shot cue.
type Sound int

const (
	SoundFire Sound = iota
	SoundScore
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundScore:
		return "score"
	default:
		return "unknown"
	}
}

// SoundPlayer plays one-shot cues. Implementations skip cues whose audio is not loaded.
type SoundPlayer interface {
	Play(Sound)
}

// ScoreDisplay receives the 4-character score text whenever the score changes.
type ScoreDisplay interface {
	SetText(string)
}

// Prototype reports whether an asset needed to fire (the bullet model) is loaded.
type Prototype interface {
	Ready() bool
}

// ScoreDisplayFunc adapts a function to ScoreDisplay.
type ScoreDisplayFunc func(string)

func (f ScoreDisplayFunc) SetText(text string) { f(text) }

// SoundPlayerFunc adapts a function to SoundPlayer.
type SoundPlayerFunc func(Sound)

func (f SoundPlayerFunc) Play(s Sound) { f(s) }

// Collaborators are the host services the frame loop talks to. Any of them may be nil.
type Collaborators struct {
	Sounds  SoundPlayer
	Haptics xr.Haptics
	Display ScoreDisplay
	Bullet  Prototype
}

func (c *Collaborators) play(s Sound) {
	if c.Sounds != nil {
		c.Sounds.Play(s)
	}
}

func (c *Collaborators) bulletReady() bool {
	return c.Bullet == nil || c.Bullet.Ready()
}
