package main

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var errNoGamepad = errors.New("no gamepad connected")

// gamepadHaptics rumbles every connected gamepad.
type gamepadHaptics struct{}

func (gamepadHaptics) Pulse(intensity float64, duration time.Duration) error {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return errNoGamepad
	}
	for _, id := range ids {
		ebiten.VibrateGamepad(id, &ebiten.VibrateGamepadOptions{
			Duration:        duration,
			StrongMagnitude: intensity,
			WeakMagnitude:   intensity,
		})
	}
	return nil
}
