package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/xrgallery/assets"
	"github.com/plus3/xrgallery/audio"
	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/ecs/debugui"
	debugui_ebiten "github.com/plus3/xrgallery/ecs/debugui/ebiten"
	"github.com/plus3/xrgallery/gallery"
)

const (
	ScreenWidth  = 1000
	ScreenHeight = 720
	sampleRate   = beep.SampleRate(44100)
)

func main() {
	assetDir := flag.String("assets", "", "Directory holding laser.wav and score.wav; empty synthesizes the cues.")
	targets := flag.Int("targets", 0, "Target count; 0 keeps GALLERY_TARGETS or the default.")
	mute := flag.Bool("mute", false, "Do not open the audio device.")
	flag.Parse()

	cfg, err := gallery.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *targets > 0 {
		cfg.TargetCount = *targets
	}

	loader := loadAssets(*assetDir)
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

	game := &Game{loader: loader, scoreText: gallery.FormatScore(0)}
	world, err := gallery.NewWorld(cfg, gallery.Collaborators{
		Sounds:  player,
		Haptics: gamepadHaptics{},
		Display: gallery.ScoreDisplayFunc(func(text string) { game.scoreText = text }),
		Bullet:  loader.Prototype("bullet"),
	})
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}
	defer world.Close()
	game.world = world

	registry := world.Registry()
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	debugui.RegisterComponents(registry)

	storage := world.Storage()
	game.backend = ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("XR Gallery", ScreenWidth, ScreenHeight))
	game.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](storage)
	debugui.Spawn(storage, world.Scheduler())
	storage.Spawn(debugui.ImguiItem{Name: "Gallery", Render: newGalleryPanel(world).Render})

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("XR Gallery")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatalf("Game exited: %v", err)
	}
}

func loadAssets(dir string) *assets.Loader {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

	var loader *assets.Loader
	if dir == "" {
		loader = assets.NewLoader(os.DirFS("."), format)
		if err := loader.Synthesize(gallery.SoundFire.String(), 1320, 80*time.Millisecond); err != nil {
			log.Printf("Synthesize fire cue: %v", err)
		}
		if err := loader.Synthesize(gallery.SoundScore.String(), 660, 200*time.Millisecond); err != nil {
			log.Printf("Synthesize score cue: %v", err)
		}
	} else {
		loader = assets.NewLoader(os.DirFS(dir), format)
		loader.LoadSound(gallery.SoundFire.String(), "laser.wav")
		loader.LoadSound(gallery.SoundScore.String(), "score.wav")
	}

	loader.Go("bullet", func() error {
		bulletSprite = renderBulletSprite(bulletSpriteSize)
		return nil
	})

	go func() {
		if err := loader.Wait(context.Background()); err != nil {
			log.Printf("Some assets failed to load: %v", err)
		}
	}()
	return loader
}
