package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"

	"github.com/plus3/xrgallery/assets"
	"github.com/plus3/xrgallery/audio"
	"github.com/plus3/xrgallery/gallery"
	"github.com/plus3/xrgallery/xr"
)

const (
	sampleRate = beep.SampleRate(44100)
	eyeHeight  = 1.5

	viewMinX = -6.0
	viewMaxX = 6.0
	viewMinZ = -11.0
	viewMaxZ = 1.0
)

func main() {
	fps := flag.Int("fps", 30, "Frames per second.")
	mute := flag.Bool("mute", false, "Do not open the audio device.")
	flag.Parse()

	cfg, err := gallery.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loader := assets.NewLoader(os.DirFS("."), beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	for _, cue := range []struct {
		sound gallery.Sound
		freq  float64
		d     time.Duration
	}{
		{gallery.SoundFire, 1320, 60 * time.Millisecond},
		{gallery.SoundScore, 660, 150 * time.Millisecond},
	} {
		if err := loader.Synthesize(cue.sound.String(), cue.freq, cue.d); err != nil {
			log.Printf("Synthesize %s cue: %v", cue.sound, err)
		}
	}

	player := audio.NewPlayer(loader, sampleRate)
	if !*mute {
		spk, err := audio.StartSpeaker(player, 100*time.Millisecond)
		if err != nil {
			// Non-fatal, the gallery runs without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer spk.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	t := &terminal{screen: screen, scoreText: gallery.FormatScore(0)}
	world, err := gallery.NewWorld(cfg, gallery.Collaborators{
		Sounds:  player,
		Display: gallery.ScoreDisplayFunc(func(text string) { t.scoreText = text }),
	})
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to create world: %v", err)
	}
	defer world.Close()
	t.world = world

	t.run(time.Second / time.Duration(max(*fps, 1)))
}

type terminal struct {
	screen tcell.Screen
	world  *gallery.World

	scoreText string
	yaw       float64
	aimHeight float64
	fire      bool
}

func (t *terminal) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !t.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			t.step(now.Sub(last).Seconds())
			last = now
			t.draw()
		}
	}
}

// handleInput returns false when the user asks to quit. Terminals report no
// key releases, so a space press holds the trigger for exactly one frame.
func (t *terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.yaw = min(t.yaw+0.05, math.Pi/2)
		case tcell.KeyRight:
			t.yaw = max(t.yaw-0.05, -math.Pi/2)
		case tcell.KeyUp:
			t.aimHeight = min(t.aimHeight+0.25, 6)
		case tcell.KeyDown:
			t.aimHeight = max(t.aimHeight-0.25, -eyeHeight)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				t.fire = true
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) origin() xr.Pose {
	eye := mgl64.Vec3{0, eyeHeight, 0}
	aimAt := eye.Add(mgl64.Vec3{-math.Sin(t.yaw), 0, -math.Cos(t.yaw)}.Mul(7.5))
	aimAt[1] = eyeHeight + t.aimHeight
	return xr.LookAt(eye, aimAt)
}

func (t *terminal) step(dt float64) {
	t.world.Step(dt, gallery.Input{Trigger: t.fire, Origin: t.origin()})
	t.fire = false
}

func (t *terminal) cell(p mgl64.Vec3) (int, int, bool) {
	w, h := t.screen.Size()
	h -= 2
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	x := int((p.X() - viewMinX) / (viewMaxX - viewMinX) * float64(w))
	y := int((p.Z() - viewMinZ) / (viewMaxZ - viewMinZ) * float64(h))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

var targetStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorBlue),
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorPurple),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

func (t *terminal) draw() {
	t.screen.Clear()

	for _, target := range t.world.Targets() {
		x, y, ok := t.cell(target.Position)
		if !ok {
			continue
		}
		switch {
		case !target.Visible:
			t.screen.SetContent(x, y, '·', nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
		case target.Scale < 0.5:
			t.screen.SetContent(x, y, 'o', nil, targetStyles[target.Slot%len(targetStyles)])
		default:
			t.screen.SetContent(x, y, 'O', nil, targetStyles[target.Slot%len(targetStyles)].Bold(true))
		}
	}

	for _, p := range t.world.Projectiles() {
		if x, y, ok := t.cell(p.Position); ok {
			t.screen.SetContent(x, y, '*', nil, tcell.StyleDefault.Foreground(tcell.ColorOrange))
		}
	}

	origin := t.origin()
	for d := 1.0; d < 6; d++ {
		if x, y, ok := t.cell(origin.Position.Add(origin.Forward().Mul(d))); ok {
			t.screen.SetContent(x, y, '.', nil, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		}
	}
	if x, y, ok := t.cell(origin.Position); ok {
		t.screen.SetContent(x, y, 'A', nil, tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true))
	}

	_, h := t.screen.Size()
	stats := t.world.Stats()
	t.print(0, h-2, fmt.Sprintf("SCORE %s  hits %d/%d  aim height %.2f", t.scoreText, stats.Hits, stats.Fired, eyeHeight+t.aimHeight))
	t.print(0, h-1, "space fire  left/right aim  up/down height  q quit")

	t.screen.Show()
}

func (t *terminal) print(x, y int, s string) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
