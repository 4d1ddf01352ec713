package gallery

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/xr"
)

// FireSystem turns rising edges of the trigger into projectiles. Holding the
// trigger fires once; a press while the bullet prototype is still loading is
// consumed without firing.
type FireSystem struct {
	Trigger ecs.Singleton[Trigger]
	Stats   ecs.Singleton[Stats]

	cfg    *Config
	collab *Collaborators
}

func (s *FireSystem) Execute(frame *ecs.UpdateFrame) {
	trigger := s.Trigger.Get()
	edge := trigger.Pressed && !trigger.Held
	trigger.Held = trigger.Pressed
	if !edge {
		return
	}

	stats := s.Stats.Get()
	if !s.collab.bulletReady() {
		stats.Misfires++
		return
	}

	origin := trigger.Origin
	frame.Commands.Spawn(
		xr.NewTransform(origin),
		Projectile{
			Velocity: origin.Forward().Mul(s.cfg.ProjectileSpeed),
			TTL:      s.cfg.ProjectileTTL,
		},
	)
	stats.Fired++

	s.collab.play(SoundFire)
	xr.TryPulse(s.collab.Haptics, s.cfg.HapticIntensity, s.cfg.HapticDuration)
}

// TweenSystem advances scale animations.
type TweenSystem struct {
	Tweens ecs.Query[struct {
		*xr.Transform
		*ScaleTween
	}]
}

func (s *TweenSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Tweens.Values() {
		tw := item.ScaleTween
		if !tw.Running {
			continue
		}

		tw.Elapsed += frame.DeltaTime
		f := 1.0
		if tw.Duration > 0 {
			f = min(tw.Elapsed/tw.Duration, 1)
		}
		item.Transform.Scale = tw.From + (tw.To-tw.From)*f
		if f >= 1 {
			tw.Running = false
		}
	}
}

// ProjectileSystem moves projectiles, expires them and resolves hits.
type ProjectileSystem struct {
	Projectiles ecs.Query[projectileView]
	Targets     ecs.Query[targetView]
	Score       ecs.Singleton[Score]
	Stats       ecs.Singleton[Stats]

	cfg    *Config
	collab *Collaborators
	hits   *hitSequence
}

func (s *ProjectileSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	stats := s.Stats.Get()

	for id, p := range s.Projectiles.Iter() {
		if p.Projectile.TTL < 0 {
			frame.Commands.Delete(id)
			stats.Expired++
			continue
		}

		p.Transform.Position = p.Transform.Position.Add(p.Projectile.Velocity.Mul(dt))
		p.Projectile.TTL -= dt

		if targetId, target, ok := s.firstHit(p.Transform.Position); ok {
			frame.Commands.Delete(id)
			s.Score.Get().Value += s.cfg.HitReward
			stats.Hits++
			s.hits.start(frame, targetId, target)
			s.collab.play(SoundScore)
			continue
		}

		if p.Projectile.TTL <= 0 {
			frame.Commands.Delete(id)
			stats.Expired++
		}
	}
}

// firstHit returns the first hittable target, in slot order, within the hit radius of pos.
func (s *ProjectileSystem) firstHit(pos mgl64.Vec3) (ecs.EntityId, targetView, bool) {
	for id, t := range s.Targets.Iter() {
		if !t.Target.Hittable() {
			continue
		}
		if pos.Sub(t.Transform.Position).Len() < s.cfg.HitRadius {
			return id, t, true
		}
	}
	return 0, targetView{}, false
}

// ScoreSystem pushes the score text to the display whenever the score changes.
type ScoreSystem struct {
	Score ecs.Singleton[Score]

	display  ScoreDisplay
	last     int
	rendered bool
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	if value := s.Score.Get().Value; !s.rendered || value != s.last {
		s.render(value)
	}
}

func (s *ScoreSystem) render(value int) {
	s.last = value
	s.rendered = true
	if s.display != nil {
		s.display.SetText(FormatScore(value))
	}
}
