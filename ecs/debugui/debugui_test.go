package debugui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/ecs/debugui"
)

type health struct {
	Current int
	Max     int
	regen   float64
}

type label string

func TestDescribeComponent(t *testing.T) {
	fields := debugui.DescribeComponent(&health{Current: 3, Max: 10, regen: 0.5})
	assert.Equal(t, []debugui.Field{
		{Name: "Current", Value: "3"},
		{Name: "Max", Value: "10"},
	}, fields)

	assert.Equal(t, fields, debugui.DescribeComponent(health{Current: 3, Max: 10}))
	assert.Equal(t, []debugui.Field{{Name: "label", Value: "boss"}}, debugui.DescribeComponent(label("boss")))
	assert.Nil(t, debugui.DescribeComponent((*health)(nil)))

	item := debugui.DescribeComponent(debugui.ImguiItem{Name: "Stats"})
	assert.Equal(t, []debugui.Field{
		{Name: "Name", Value: "Stats"},
		{Name: "Hidden", Value: "false"},
		{Name: "Render", Value: "nil"},
	}, item)
}

func TestPerformancePanelSamplesFrames(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	panel := debugui.NewPerformancePanel(storage, scheduler, 4)
	scheduler.Register(panel)

	assert.Zero(t, panel.AverageFrameTime())

	scheduler.Once(0.010)
	scheduler.Once(0.020)
	assert.InDelta(t, 15.0, panel.AverageFrameTime(), 1e-3)

	for range 4 {
		scheduler.Once(0.005)
	}
	assert.InDelta(t, 5.0, panel.AverageFrameTime(), 1e-3, "old samples roll off")
}
