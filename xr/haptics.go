package xr

import "time"

// Haptics is a controller actuator. Implementations may be missing hardware
// or an API and report that as an error.
type Haptics interface {
	Pulse(intensity float64, duration time.Duration) error
}

// HapticsFunc adapts a function to Haptics.
type HapticsFunc func(intensity float64, duration time.Duration) error

func (f HapticsFunc) Pulse(intensity float64, duration time.Duration) error {
	return f(intensity, duration)
}

// TryPulse fires a best-effort pulse. Errors and panics from the actuator are
// swallowed; the return value only reports whether the pulse went through.
func TryPulse(h Haptics, intensity float64, duration time.Duration) (ok bool) {
	if h == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return h.Pulse(intensity, duration) == nil
}
