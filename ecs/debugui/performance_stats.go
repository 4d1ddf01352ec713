package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/xrgallery/ecs"
)

// PerformancePanel is a system that samples frame times and an ImGui panel
// that shows them next to the storage and scheduler statistics.
type PerformancePanel struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	frameHistory []float32
	frameIndex   int
	samples      int
}

func NewPerformancePanel(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *PerformancePanel {
	return &PerformancePanel{
		storage:      storage,
		scheduler:    scheduler,
		frameHistory: make([]float32, max(historyFrames, 1)),
	}
}

// Execute records the frame's delta time in milliseconds.
func (ps *PerformancePanel) Execute(frame *ecs.UpdateFrame) {
	ps.frameHistory[ps.frameIndex] = float32(frame.DeltaTime * 1000)
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)
	ps.samples = min(ps.samples+1, len(ps.frameHistory))
}

// AverageFrameTime returns the mean of the recorded frame times in milliseconds.
func (ps *PerformancePanel) AverageFrameTime() float32 {
	if ps.samples == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.samples)
}

func (ps *PerformancePanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 120), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.storage.CollectStats()
	sched := ps.scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Frames: %d  Sim time: %.2fs", sched.Frames, ps.scheduler.Now()))
	imgui.Text(fmt.Sprintf("Timers: %d pending, %d fired", ps.scheduler.Timers().Pending(), sched.TimersFired))

	if avg := ps.AverageFrameTime(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
