package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/xrgallery/gallery"
)

type galleryPanel struct {
	world *gallery.World
}

func newGalleryPanel(world *gallery.World) *galleryPanel {
	return &galleryPanel{world: world}
}

func (p *galleryPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 560), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 150), imgui.CondOnce)
	if !imgui.BeginV("Gallery", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.world.Stats()
	imgui.TextColored(imgui.NewVec4(1, 0.64, 0.46, 1), fmt.Sprintf("Score %s (raw %d)", p.world.ScoreText(), p.world.Score()))
	imgui.Text(fmt.Sprintf("Fired %d  Hits %d  Expired %d  Misfires %d  Respawns %d",
		stats.Fired, stats.Hits, stats.Expired, stats.Misfires, stats.Respawns))
	imgui.Text(fmt.Sprintf("Projectiles in flight: %d", len(p.world.Projectiles())))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Targets", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Scale")
		imgui.TableSetupColumn("State")
		imgui.TableHeadersRow()

		for _, t := range p.world.Targets() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", t.Slot))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f, %.2f, %.2f", t.Position.X(), t.Position.Y(), t.Position.Z()))
			imgui.TableNextColumn()
			imgui.ProgressBarV(float32(t.Scale), imgui.NewVec2(-1, 0), "")
			imgui.TableNextColumn()
			imgui.Text(targetState(t))
		}
		imgui.EndTable()
	}

	imgui.End()
}

func targetState(t gallery.TargetState) string {
	switch {
	case t.Visible && t.Active:
		return "ready"
	case t.Visible:
		return "shrinking"
	default:
		return "hidden"
	}
}
