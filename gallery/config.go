package gallery

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the tuning constants of the shooting gallery. Every field can
// be overridden from the environment with the GALLERY_ prefix.
type Config struct {
	TargetCount int `env:"TARGETS"`
	// Targets start in rows: slot i at height TargetY + i*TargetYStep.
	TargetY     float64 `env:"TARGET_Y"`
	TargetYStep float64 `env:"TARGET_Y_STEP"`

	ProjectileSpeed float64 `env:"PROJECTILE_SPEED"`
	ProjectileTTL   float64 `env:"PROJECTILE_TTL"`

	HitRadius float64 `env:"HIT_RADIUS"`
	HitReward int     `env:"HIT_REWARD"`

	ShrinkDuration float64 `env:"SHRINK_SECONDS"`
	RespawnDelay   float64 `env:"RESPAWN_DELAY_SECONDS"`
	GrowDuration   float64 `env:"GROW_SECONDS"`

	SpawnMinX float64 `env:"SPAWN_MIN_X"`
	SpawnMaxX float64 `env:"SPAWN_MAX_X"`
	SpawnMinZ float64 `env:"SPAWN_MIN_Z"`
	SpawnMaxZ float64 `env:"SPAWN_MAX_Z"`

	HapticIntensity float64       `env:"HAPTIC_INTENSITY"`
	HapticDuration  time.Duration `env:"HAPTIC_DURATION"`

	// Seed drives target placement. Zero picks a random seed.
	Seed uint64 `env:"SEED"`
}

// DefaultConfig returns the gallery as the VR sketch ships it.
func DefaultConfig() Config {
	return Config{
		TargetCount:     3,
		TargetY:         1,
		TargetYStep:     2,
		ProjectileSpeed: 10,
		ProjectileTTL:   1,
		HitRadius:       1,
		HitReward:       10,
		ShrinkDuration:  0.3,
		RespawnDelay:    1,
		GrowDuration:    0.3,
		SpawnMinX:       -5,
		SpawnMaxX:       5,
		SpawnMinZ:       -10,
		SpawnMaxZ:       -5,
		HapticIntensity: 0.6,
		HapticDuration:  100 * time.Millisecond,
	}
}

// LoadConfig starts from DefaultConfig and applies GALLERY_* environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GALLERY_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.TargetCount < 0 {
		errs = append(errs, fmt.Errorf("target count must not be negative, got %d", c.TargetCount))
	}
	if c.ProjectileSpeed < 0 {
		errs = append(errs, fmt.Errorf("projectile speed must not be negative, got %g", c.ProjectileSpeed))
	}
	if c.ProjectileTTL <= 0 {
		errs = append(errs, fmt.Errorf("projectile ttl must be positive, got %g", c.ProjectileTTL))
	}
	if c.HitRadius <= 0 {
		errs = append(errs, fmt.Errorf("hit radius must be positive, got %g", c.HitRadius))
	}
	if c.HitReward < 0 {
		errs = append(errs, fmt.Errorf("hit reward must not be negative, got %d", c.HitReward))
	}
	if c.ShrinkDuration < 0 || c.RespawnDelay < 0 || c.GrowDuration < 0 {
		errs = append(errs, errors.New("hit sequence durations must not be negative"))
	}
	if c.SpawnMinX > c.SpawnMaxX {
		errs = append(errs, fmt.Errorf("spawn x range is empty: [%g, %g]", c.SpawnMinX, c.SpawnMaxX))
	}
	if c.SpawnMinZ > c.SpawnMaxZ {
		errs = append(errs, fmt.Errorf("spawn z range is empty: [%g, %g]", c.SpawnMinZ, c.SpawnMaxZ))
	}
	if c.HapticIntensity < 0 || c.HapticIntensity > 1 {
		errs = append(errs, fmt.Errorf("haptic intensity must be within [0, 1], got %g", c.HapticIntensity))
	}
	if c.HapticDuration < 0 {
		errs = append(errs, fmt.Errorf("haptic duration must not be negative, got %s", c.HapticDuration))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid gallery config: %w", err)
	}
	return nil
}
