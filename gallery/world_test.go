package gallery_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/xrgallery/gallery"
	"github.com/plus3/xrgallery/xr"
)

type recorder struct {
	sounds []gallery.Sound
	texts  []string
	pulses int
}

func (r *recorder) collaborators() gallery.Collaborators {
	return gallery.Collaborators{
		Sounds:  gallery.SoundPlayerFunc(func(s gallery.Sound) { r.sounds = append(r.sounds, s) }),
		Display: gallery.ScoreDisplayFunc(func(text string) { r.texts = append(r.texts, text) }),
		Haptics: xr.HapticsFunc(func(float64, time.Duration) error {
			r.pulses++
			return nil
		}),
	}
}

type readiness bool

func (r *readiness) Ready() bool { return bool(*r) }

func newWorld(t *testing.T, targets int, collab gallery.Collaborators) *gallery.World {
	t.Helper()
	cfg := gallery.DefaultConfig()
	cfg.TargetCount = targets
	cfg.Seed = 7
	w, err := gallery.NewWorld(cfg, collab)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

func fire(origin xr.Pose) gallery.Input {
	return gallery.Input{Trigger: true, Origin: origin}
}

func idle() gallery.Input {
	return gallery.Input{Origin: xr.IdentityPose()}
}

// run advances the world in fixed steps for roughly seconds of simulation time.
func run(w *gallery.World, seconds, dt float64) {
	for n := int(math.Round(seconds / dt)); n > 0; n-- {
		w.Step(dt, idle())
	}
}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-9), "want %v, got %v", want, got)
}

func TestFireFromOriginAndExpire(t *testing.T) {
	w := newWorld(t, 0, gallery.Collaborators{})

	w.Step(0, fire(xr.IdentityPose()))
	projectiles := w.Projectiles()
	require.Len(t, projectiles, 1)
	assertVec(t, mgl64.Vec3{}, projectiles[0].Position)
	assertVec(t, mgl64.Vec3{0, 0, -10}, projectiles[0].Velocity)
	assert.Equal(t, 1.0, projectiles[0].TTL)

	w.Step(0.5, fire(xr.IdentityPose()))
	projectiles = w.Projectiles()
	require.Len(t, projectiles, 1, "held trigger does not refire")
	assertVec(t, mgl64.Vec3{0, 0, -5}, projectiles[0].Position)
	assert.InDelta(t, 0.5, projectiles[0].TTL, 1e-12)

	w.Step(0.5, idle())
	assert.Empty(t, w.Projectiles(), "lifetime reached zero at t=1.0")
	assert.Equal(t, 1, w.Stats().Expired)
}

func TestFireFollowsOriginOrientation(t *testing.T) {
	w := newWorld(t, 0, gallery.Collaborators{})

	origin := xr.Facing(mgl64.Vec3{1, 1.5, 0}, math.Pi/2, 0)
	w.Step(0, fire(origin))
	w.Step(0.1, idle())

	projectiles := w.Projectiles()
	require.Len(t, projectiles, 1)
	assertVec(t, mgl64.Vec3{-10, 0, 0}, projectiles[0].Velocity)
	assertVec(t, mgl64.Vec3{0, 1.5, 0}, projectiles[0].Position)
}

func TestProjectileMotionIsExact(t *testing.T) {
	for _, dt := range []float64{0, 0.001, 1.0 / 60, 0.25, 0.9} {
		w := newWorld(t, 0, gallery.Collaborators{})
		start := mgl64.Vec3{1, 2, 3}
		velocity := mgl64.Vec3{0.5, -1, -4}
		w.SpawnProjectile(start, velocity, 5)

		w.Step(dt, idle())

		projectiles := w.Projectiles()
		require.Len(t, projectiles, 1)
		assertVec(t, start.Add(velocity.Mul(dt)), projectiles[0].Position)
		assert.Equal(t, 5-dt, projectiles[0].TTL)
	}
}

func TestExpiredProjectileRemovedWithoutMoving(t *testing.T) {
	w := newWorld(t, 1, gallery.Collaborators{})
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 0, -1}))

	// Moving would land exactly on the target; an expired projectile must not score.
	w.SpawnProjectile(mgl64.Vec3{}, mgl64.Vec3{0, 0, -10}, -0.01)
	w.Step(0.1, idle())

	assert.Empty(t, w.Projectiles())
	assert.Zero(t, w.Score())
	assert.Equal(t, 1, w.Stats().Expired)
}

func TestBadDeltaDoesNotMoveState(t *testing.T) {
	w := newWorld(t, 0, gallery.Collaborators{})
	w.SpawnProjectile(mgl64.Vec3{}, mgl64.Vec3{0, 0, -10}, 1)

	for _, dt := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1), 0} {
		w.Step(dt, idle())
	}

	projectiles := w.Projectiles()
	require.Len(t, projectiles, 1)
	assertVec(t, mgl64.Vec3{}, projectiles[0].Position)
	assert.Equal(t, 1.0, projectiles[0].TTL)
	assert.Zero(t, w.Now())
}

func TestEdgeTriggeredFire(t *testing.T) {
	w := newWorld(t, 0, gallery.Collaborators{})

	for i := 0; i < 5; i++ {
		w.Step(0.01, fire(xr.IdentityPose()))
	}
	assert.Equal(t, 1, w.Stats().Fired)

	w.Step(0.01, idle())
	w.Step(0.01, fire(xr.IdentityPose()))
	w.Step(0.01, fire(xr.IdentityPose()))
	assert.Equal(t, 2, w.Stats().Fired)
	assert.Len(t, w.Projectiles(), 2)
}

func TestFireIsNoOpUntilBulletLoaded(t *testing.T) {
	ready := readiness(false)
	w := newWorld(t, 0, gallery.Collaborators{Bullet: &ready})

	w.Step(0.01, fire(xr.IdentityPose()))
	assert.Empty(t, w.Projectiles())
	assert.Equal(t, 1, w.Stats().Misfires)

	ready = true
	w.Step(0.01, fire(xr.IdentityPose()))
	assert.Empty(t, w.Projectiles(), "the press was consumed while loading")

	w.Step(0.01, idle())
	w.Step(0.01, fire(xr.IdentityPose()))
	w.Step(0.01, idle())
	assert.Len(t, w.Projectiles(), 1)
}

func TestFireNotifiesCollaborators(t *testing.T) {
	rec := &recorder{}
	w := newWorld(t, 0, rec.collaborators())

	w.Step(0.01, fire(xr.IdentityPose()))

	assert.Equal(t, []gallery.Sound{gallery.SoundFire}, rec.sounds)
	assert.Equal(t, 1, rec.pulses)
}

func TestHapticFailuresAreIgnored(t *testing.T) {
	for name, h := range map[string]xr.Haptics{
		"error": xr.HapticsFunc(func(float64, time.Duration) error { return errors.New("no actuator") }),
		"panic": xr.HapticsFunc(func(float64, time.Duration) error { panic("haptics unsupported") }),
	} {
		t.Run(name, func(t *testing.T) {
			w := newWorld(t, 0, gallery.Collaborators{Haptics: h})
			assert.NotPanics(t, func() {
				w.Step(0.01, fire(xr.IdentityPose()))
				w.Step(0.01, idle())
			})
			assert.Len(t, w.Projectiles(), 1)
		})
	}
}

func TestHitScoresAndStartsSequence(t *testing.T) {
	rec := &recorder{}
	w := newWorld(t, 1, rec.collaborators())
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 1, -5}))

	w.SpawnProjectile(mgl64.Vec3{0.5, 1, -4}, mgl64.Vec3{0, 0, -10}, 1)
	w.Step(0.1, idle())

	assert.Empty(t, w.Projectiles(), "projectile removed on hit")
	assert.Equal(t, 10, w.Score())
	assert.Equal(t, "0010", w.ScoreText())
	assert.Equal(t, []gallery.Sound{gallery.SoundScore}, rec.sounds)
	assert.Equal(t, []string{"0000", "0010"}, rec.texts)

	target := w.Targets()[0]
	assert.True(t, target.Visible, "still shrinking")
	assert.False(t, target.Active)

	run(w, 0.29, 0.01)
	target = w.Targets()[0]
	assert.True(t, target.Visible)
	assert.Less(t, target.Scale, 0.1)
	assert.Greater(t, target.Scale, 0.0)

	run(w, 0.02, 0.01)
	target = w.Targets()[0]
	assert.False(t, target.Visible, "hidden after the shrink")
	assert.Zero(t, target.Scale)
	assertVec(t, mgl64.Vec3{0, 1, -5}, target.Position)

	run(w, 0.97, 0.01)
	assert.False(t, w.Targets()[0].Visible, "still waiting 1.28s after the hit")

	run(w, 0.04, 0.01)
	target = w.Targets()[0]
	assert.True(t, target.Visible, "back 1.3s after the hit")
	assert.True(t, target.Active)
	assert.Equal(t, 1.0, target.Position.Y())
	assert.GreaterOrEqual(t, target.Position.X(), -5.0)
	assert.LessOrEqual(t, target.Position.X(), 5.0)
	assert.GreaterOrEqual(t, target.Position.Z(), -10.0)
	assert.LessOrEqual(t, target.Position.Z(), -5.0)

	run(w, 0.4, 0.01)
	assert.InDelta(t, 1.0, w.Targets()[0].Scale, 1e-9)
	assert.Equal(t, 1, w.Stats().Respawns)
	assert.Equal(t, []string{"0000", "0010"}, rec.texts, "display redraws only on change")
}

func TestOverlappingTargetsCreditOneHit(t *testing.T) {
	w := newWorld(t, 2, gallery.Collaborators{})
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 1, -5}))
	require.NoError(t, w.PlaceTarget(1, mgl64.Vec3{0.2, 1, -5}))

	w.SpawnProjectile(mgl64.Vec3{0, 1, -4.6}, mgl64.Vec3{0, 0, -1}, 1)
	w.Step(0.1, idle())

	assert.Equal(t, 10, w.Score())
	targets := w.Targets()
	require.Len(t, targets, 2)
	assert.False(t, targets[0].Active, "lowest slot wins")
	assert.True(t, targets[1].Active)
}

func TestSecondProjectileCannotHitShrinkingTarget(t *testing.T) {
	w := newWorld(t, 1, gallery.Collaborators{})
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 1, -5}))

	w.SpawnProjectile(mgl64.Vec3{0, 1, -5}, mgl64.Vec3{}, 1)
	w.SpawnProjectile(mgl64.Vec3{0, 1, -5}, mgl64.Vec3{}, 1)
	w.Step(0.01, idle())

	assert.Equal(t, 10, w.Score())
	assert.Len(t, w.Projectiles(), 1)
}

func TestInvisibleTargetNeverCollides(t *testing.T) {
	w := newWorld(t, 1, gallery.Collaborators{})
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 1, -5}))

	w.SpawnProjectile(mgl64.Vec3{0, 1, -5}, mgl64.Vec3{}, 5)
	w.Step(0.01, idle())
	run(w, 0.5, 0.01)
	require.False(t, w.Targets()[0].Visible)

	// Park a projectile exactly on the hidden target.
	w.SpawnProjectile(w.Targets()[0].Position, mgl64.Vec3{}, 0.5)
	run(w, 0.3, 0.01)
	assert.Equal(t, 10, w.Score())
}

func TestSequenceSkipsRemovedTarget(t *testing.T) {
	w := newWorld(t, 1, gallery.Collaborators{})
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 1, -5}))

	w.SpawnProjectile(mgl64.Vec3{0, 1, -5}, mgl64.Vec3{}, 1)
	w.Step(0.01, idle())
	w.Storage().Delete(w.Targets()[0].Id)

	assert.NotPanics(t, func() { run(w, 2, 0.01) })
	assert.Zero(t, w.Stats().Respawns)
}

func TestCloseDropsPendingSequence(t *testing.T) {
	w := newWorld(t, 1, gallery.Collaborators{})
	require.NoError(t, w.PlaceTarget(0, mgl64.Vec3{0, 1, -5}))

	w.SpawnProjectile(mgl64.Vec3{0, 1, -5}, mgl64.Vec3{}, 1)
	w.Step(0.01, idle())
	w.Close()

	run(w, 2, 0.01)
	assert.Zero(t, w.Stats().Respawns)
	assert.Equal(t, 0.01, w.Now())
	assert.Zero(t, w.Scheduler().Timers().Pending())
}

func TestTargetsSpawnInRangeDeterministically(t *testing.T) {
	a := newWorld(t, 5, gallery.Collaborators{})
	b := newWorld(t, 5, gallery.Collaborators{})

	ta, tb := a.Targets(), b.Targets()
	require.Len(t, ta, 5)
	for i := range ta {
		assert.Equal(t, i, ta[i].Slot)
		assert.Equal(t, ta[i].Position, tb[i].Position)
		assert.True(t, ta[i].Visible)
		assert.True(t, ta[i].Active)
		assert.Equal(t, 1.0, ta[i].Scale)
		assert.Equal(t, 1+2*float64(i), ta[i].Position.Y())
		assert.True(t, ta[i].Position.X() >= -5 && ta[i].Position.X() <= 5)
		assert.True(t, ta[i].Position.Z() >= -10 && ta[i].Position.Z() <= -5)
	}

	assert.Error(t, a.PlaceTarget(9, mgl64.Vec3{}))
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := gallery.DefaultConfig()
	cfg.HitRadius = 0
	_, err := gallery.NewWorld(cfg, gallery.Collaborators{})
	assert.ErrorContains(t, err, "hit radius")
}
