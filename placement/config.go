package placement

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl64"
)

// Config sizes the anchor cube and the objects placed on select. Fields can
// be overridden from the environment with the PLACEMENT_ prefix.
type Config struct {
	ObjectSize float64 `env:"OBJECT_SIZE"`

	AnchorSize     float64 `env:"ANCHOR_SIZE"`
	AnchorPosition mgl64.Vec3
}

// DefaultConfig matches the AR sketch: a 0.2 cube one metre ahead and 0.1 cubes on select.
func DefaultConfig() Config {
	return Config{
		ObjectSize:     0.1,
		AnchorSize:     0.2,
		AnchorPosition: mgl64.Vec3{0, 0, -1},
	}
}

// LoadConfig starts from DefaultConfig and applies PLACEMENT_* environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PLACEMENT_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.ObjectSize <= 0 {
		errs = append(errs, fmt.Errorf("object size must be positive, got %g", c.ObjectSize))
	}
	if c.AnchorSize < 0 {
		errs = append(errs, fmt.Errorf("anchor size must not be negative, got %g", c.AnchorSize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid placement config: %w", err)
	}
	return nil
}
