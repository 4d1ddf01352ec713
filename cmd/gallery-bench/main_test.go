package main

import (
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/gallery"
)

func TestAimBotTargetsFirstHittable(t *testing.T) {
	bot := &aimBot{origin: mgl64.Vec3{0, 1.5, 0}, every: 3}
	targets := []gallery.TargetState{
		{Slot: 0, Position: mgl64.Vec3{0, 1, -5}, Visible: true},
		{Slot: 1, Position: mgl64.Vec3{3, 1.5, -6}, Visible: true, Active: true},
	}

	in := bot.input(0, targets)
	assert.True(t, in.Trigger)
	want := targets[1].Position.Sub(bot.origin).Normalize()
	assert.True(t, want.ApproxEqualThreshold(in.Origin.Forward(), 1e-9))

	assert.False(t, bot.input(1, targets).Trigger)
	assert.False(t, bot.input(2, targets).Trigger)
	assert.True(t, bot.input(3, targets).Trigger)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Frames:    100,
		TPS:       90,
		Targets:   3,
		Gameplay:  gallery.Stats{Fired: 8, Hits: 2},
		Score:     20,
		ScoreText: "0020",
		Scheduler: &ecs.SchedulerStats{Systems: []ecs.SystemStats{{Name: "FireSystem"}}},
	}

	var out strings.Builder
	require.NoError(t, r.Generate(&out))
	assert.Contains(t, out.String(), "**Hits:** 2 (25.0%)")
	assert.Contains(t, out.String(), "display 0020")
	assert.Contains(t, out.String(), "- FireSystem: avg")
}
