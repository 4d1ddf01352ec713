package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// World window shown on screen.
	viewMinX = -8.0
	viewMaxX = 8.0
	viewMinZ = -12.0
	viewMaxZ = 1.5

	bulletSpriteSize = 12
)

var (
	bulletSprite *image.RGBA
	bulletImage  *ebiten.Image

	background  = color.RGBA{R: 18, G: 20, B: 32, A: 255}
	gridColor   = color.RGBA{R: 40, G: 44, B: 64, A: 255}
	aimColor    = color.RGBA{R: 255, G: 162, B: 118, A: 160}
	playerColor = color.RGBA{R: 120, G: 180, B: 220, A: 255}
	ghostColor  = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	scoreColor  = color.RGBA{R: 255, G: 162, B: 118, A: 255}

	// Targets are tinted by row.
	targetColors = []color.RGBA{
		{R: 255, G: 179, B: 186, A: 255},
		{R: 179, G: 229, B: 252, A: 255},
		{R: 186, G: 255, B: 201, A: 255},
		{R: 255, G: 255, B: 186, A: 255},
		{R: 217, G: 186, B: 255, A: 255},
	}
)

// renderBulletSprite draws a soft round glow.
func renderBulletSprite(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			if d > 1 {
				continue
			}
			a := uint8(255 * (1 - d*d))
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: uint8(float64(a) * 0.6), A: a})
		}
	}
	return img
}

func (g *Game) pixelsPerUnit() float64 {
	return min(float64(g.width)/(viewMaxX-viewMinX), float64(g.height)/(viewMaxZ-viewMinZ))
}

func (g *Game) worldToScreen(p mgl64.Vec3) (float32, float32) {
	ppu := g.pixelsPerUnit()
	x := float64(g.width)/2 + p.X()*ppu
	y := (p.Z() - viewMinZ) * ppu
	return float32(x), float32(y)
}

func (g *Game) screenToWorld(sx, sy float64) mgl64.Vec3 {
	ppu := g.pixelsPerUnit()
	if ppu == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return mgl64.Vec3{(sx - float64(g.width)/2) / ppu, 0, sy/ppu + viewMinZ}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	ppu := float32(g.pixelsPerUnit())

	for z := viewMinZ; z <= viewMaxZ; z++ {
		x0, y := g.worldToScreen(mgl64.Vec3{viewMinX, 0, z})
		x1, _ := g.worldToScreen(mgl64.Vec3{viewMaxX, 0, z})
		vector.StrokeLine(screen, x0, y, x1, y, 1, gridColor, false)
	}

	cfg := g.world.Config()
	for _, t := range g.world.Targets() {
		x, y := g.worldToScreen(t.Position)
		if !t.Visible {
			vector.StrokeCircle(screen, x, y, float32(cfg.HitRadius)*ppu, 1, ghostColor, true)
			continue
		}
		col := targetColors[t.Slot%len(targetColors)]
		vector.DrawFilledCircle(screen, x, y, float32(cfg.HitRadius*t.Scale)*ppu, col, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("y=%.1f", t.Position.Y()), int(x)-16, int(y)-6)
	}

	if bulletImage == nil && g.loader.Ready("bullet") {
		bulletImage = ebiten.NewImageFromImage(bulletSprite)
	}
	for _, p := range g.world.Projectiles() {
		x, y := g.worldToScreen(p.Position)
		if bulletImage == nil {
			vector.DrawFilledCircle(screen, x, y, 3, scoreColor, true)
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x)-bulletSpriteSize/2, float64(y)-bulletSpriteSize/2)
		screen.DrawImage(bulletImage, op)
	}

	px, py := g.worldToScreen(g.aim.Position)
	ax, ay := g.worldToScreen(g.aim.Position.Add(g.aim.Forward().Mul(cfg.ProjectileSpeed * cfg.ProjectileTTL)))
	vector.StrokeLine(screen, px, py, ax, ay, 1, aimColor, true)
	vector.DrawFilledCircle(screen, px, py, 8, playerColor, true)

	hud := fmt.Sprintf("SCORE %s\naim height %.1f\nspace/click/RT fire, W/S or wheel aim height, esc quit",
		g.scoreText, eyeHeight+g.aimHeight)
	ebitenutil.DebugPrintAt(screen, hud, g.width-340, g.height-52)
	if !g.loader.Ready("bullet") {
		ebitenutil.DebugPrintAt(screen, "loading blaster...", g.width/2-50, g.height/2)
	}

	g.backend.Get().Draw(screen)
}
