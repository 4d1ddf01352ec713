package gallery_test

import (
	"fmt"

	"github.com/plus3/xrgallery/gallery"
	"github.com/plus3/xrgallery/xr"
)

func ExampleWorld() {
	cfg := gallery.DefaultConfig()
	cfg.TargetCount = 0
	cfg.Seed = 1

	world, err := gallery.NewWorld(cfg, gallery.Collaborators{
		Display: gallery.ScoreDisplayFunc(func(text string) { fmt.Println("score", text) }),
	})
	if err != nil {
		panic(err)
	}
	defer world.Close()

	origin := xr.IdentityPose()
	world.Step(0, gallery.Input{Trigger: true, Origin: origin})
	world.Step(0.5, gallery.Input{Trigger: true, Origin: origin})

	p := world.Projectiles()[0]
	fmt.Printf("z=%.1f ttl=%.1f\n", p.Position.Z(), p.TTL)

	world.Step(0.5, gallery.Input{Origin: origin})
	fmt.Println("live projectiles:", len(world.Projectiles()))
	// Output:
	// score 0000
	// z=-5.0 ttl=0.5
	// live projectiles: 0
}
