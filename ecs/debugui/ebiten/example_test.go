package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/ecs/debugui"
	debugui_ebiten "github.com/plus3/xrgallery/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler    *ecs.Scheduler
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	// Systems (including ImguiSystem) run inside the ImGui frame.
	g.imguiBackend.Get().Frame(func() {
		g.scheduler.Once(1.0 / float64(ebiten.TPS()))
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content first, then the overlay.
	g.imguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	debugui.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720))

	storage.Spawn(debugui.ImguiItem{
		Name: "Hello",
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	debugui.Spawn(storage, scheduler)

	game := &Game{
		scheduler:    scheduler,
		imguiBackend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
	}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
