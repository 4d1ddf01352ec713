package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/xrgallery/placement"
	"github.com/plus3/xrgallery/xr"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600

	// Top-down view of the floor in front of the viewer, in metres.
	viewHalfWidth = 2.0
	viewDepth     = 3.0
	// Floor band that returns hit-test results; outside it the reticle hides.
	floorNear = -0.25
	floorFar  = -2.75
)

var (
	floorColor   = color.RGBA{R: 34, G: 38, B: 46, A: 255}
	reticleColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	cubeColor    = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	anchorColors = []color.RGBA{
		{R: 255, A: 255},
		{B: 255, A: 255},
		{G: 255, A: 255},
		{R: 255, B: 255, A: 255},
		{G: 255, B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
)

func main() {
	cfg, err := placement.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	world, err := placement.NewWorld(cfg)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}
	defer world.Close()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("AR Placement")

	if err := ebiten.RunGame(&Game{world: world}); err != nil && err != ebiten.Termination {
		log.Fatalf("Game exited: %v", err)
	}
}

// Game simulates the AR session: the mouse is the viewer's gaze ray and the
// floor band is the only surface the hit test finds.
type Game struct {
	world *placement.World
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	frame := placement.Frame{
		Select: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
	}
	if hit, ok := hitTest(ebiten.CursorPosition()); ok {
		frame.HitResults = []xr.Pose{hit}
	}
	g.world.Step(1/float64(ebiten.TPS()), frame)
	return nil
}

func pixelsPerMetre() float64 {
	return min(ScreenWidth/(2*viewHalfWidth), ScreenHeight/viewDepth)
}

func toScreen(p mgl64.Vec3) (float32, float32) {
	ppm := pixelsPerMetre()
	return float32(ScreenWidth/2 + p.X()*ppm), float32(ScreenHeight + p.Z()*ppm)
}

func hitTest(sx, sy int) (xr.Pose, bool) {
	ppm := pixelsPerMetre()
	x := (float64(sx) - ScreenWidth/2) / ppm
	z := (float64(sy) - ScreenHeight) / ppm
	if z > floorNear || z < floorFar || x < -viewHalfWidth || x > viewHalfWidth {
		return xr.Pose{}, false
	}
	return xr.PoseAt(x, 0, z), true
}

func (g *Game) Draw(screen *ebiten.Image) {
	ppm := float32(pixelsPerMetre())
	x0, y0 := toScreen(mgl64.Vec3{-viewHalfWidth, 0, floorFar})
	vector.DrawFilledRect(screen, x0, y0, 2*viewHalfWidth*ppm, float32(floorNear-floorFar)*ppm, floorColor, false)

	for i, p := range g.world.Placed() {
		x, y := toScreen(p.Pose.Position)
		side := float32(p.Size) * ppm
		col := cubeColor
		if p.Anchor {
			col = anchorColors[i%len(anchorColors)]
		}
		vector.DrawFilledRect(screen, x-side/2, y-side/2, side, side, col, false)
	}

	if r := g.world.Reticle(); r.Visible {
		x, y := toScreen(r.Pose.Position)
		vector.StrokeCircle(screen, x, y, 0.125*ppm, 0.05*ppm, reticleColor, true)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("click or space to place  cubes: %d  esc quit", len(g.world.Placed())))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
