package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/xrgallery/assets"
	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/ecs/debugui"
	debugui_ebiten "github.com/plus3/xrgallery/ecs/debugui/ebiten"
	"github.com/plus3/xrgallery/gallery"
	"github.com/plus3/xrgallery/xr"
)

// Eye height of the player in world units.
const eyeHeight = 1.5

// Game implements ebiten.Game. The view is top-down: screen x is world x,
// screen y is world z with the far end at the top.
type Game struct {
	world      *gallery.World
	loader     *assets.Loader
	backend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	imguiInput *ecs.Singleton[debugui.ImguiInputState]

	scoreText string
	aimHeight float64
	aim       xr.Pose
	width     int
	height    int
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.backend.Get().Frame(func() {
		in := g.sampleInput()
		g.aim = in.Origin
		g.world.Step(1/float64(ebiten.TPS()), in)
	})
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) sampleInput() gallery.Input {
	capture := g.imguiInput.Get()
	origin := mgl64.Vec3{0, eyeHeight, 0}

	trigger := false
	if !capture.WantCaptureKeyboard {
		trigger = ebiten.IsKeyPressed(ebiten.KeySpace)
		if ebiten.IsKeyPressed(ebiten.KeyW) {
			g.aimHeight += 0.05
		}
		if ebiten.IsKeyPressed(ebiten.KeyS) {
			g.aimHeight -= 0.05
		}
	}

	cx, cy := ebiten.CursorPosition()
	aimAt := g.screenToWorld(float64(cx), float64(cy))
	if !capture.WantCaptureMouse {
		trigger = trigger || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		_, wheel := ebiten.Wheel()
		g.aimHeight += wheel * 0.1
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		trigger = trigger || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		g.aimHeight -= ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical) * 0.05
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(x) > 0.2 {
			yaw := -x * math.Pi / 3
			aimAt = origin.Add(mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}.Mul(8))
		}
	}

	g.aimHeight = min(max(g.aimHeight, -eyeHeight), 6)
	aimAt[1] = eyeHeight + g.aimHeight
	return gallery.Input{Trigger: trigger, Origin: xr.LookAt(origin, aimAt)}
}
