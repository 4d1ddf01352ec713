package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/gallery"
	"github.com/plus3/xrgallery/xr"
)

func main() {
	frames := flag.Int("frames", 36000, "Number of frames to simulate.")
	tps := flag.Int("tps", 90, "Simulated frames per second.")
	targets := flag.Int("targets", 0, "Target count; 0 keeps GALLERY_TARGETS or the default.")
	fireEvery := flag.Int("fire-every", 9, "Frames between trigger presses.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := gallery.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *targets > 0 {
		cfg.TargetCount = *targets
	}

	log.Println("Starting gallery benchmark...")

	world, err := gallery.NewWorld(cfg, gallery.Collaborators{
		Sounds:  gallery.SoundPlayerFunc(func(gallery.Sound) {}),
		Display: gallery.ScoreDisplayFunc(func(string) {}),
	})
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}
	defer world.Close()

	dt := 1 / float64(max(*tps, 1))
	bot := &aimBot{origin: mgl64.Vec3{0, 1.5, 0}, every: max(*fireEvery, 2)}

	report := &Report{
		Frames:         *frames,
		TPS:            *tps,
		Targets:        cfg.TargetCount,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Simulating %d frames at %d fps...\n", *frames, *tps)
	startTime := time.Now()
	for frame := 0; frame < *frames; frame++ {
		input := bot.input(frame, world.Targets())

		updateStart := time.Now()
		world.Step(dt, input)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		report.PeakProjectiles = max(report.PeakProjectiles, len(world.Projectiles()))
	}

	report.TotalTime = time.Since(startTime)
	report.SimTime = time.Duration(world.Now() * float64(time.Second))
	report.UpdateTime.Finalize()
	report.Gameplay = world.Stats()
	report.Score = world.Score()
	report.ScoreText = world.ScoreText()
	report.Scheduler = world.Scheduler().GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Gallery Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// aimBot presses the trigger every few frames, aimed at the first hittable target.
type aimBot struct {
	origin mgl64.Vec3
	every  int
}

func (b *aimBot) input(frame int, targets []gallery.TargetState) gallery.Input {
	in := gallery.Input{Origin: xr.Pose{Position: b.origin, Orientation: mgl64.QuatIdent()}}
	for _, t := range targets {
		if t.Visible && t.Active {
			in.Origin = xr.LookAt(b.origin, t.Position)
			break
		}
	}
	in.Trigger = frame%b.every == 0
	return in
}
