// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Panels are entities carrying an ImguiItem; ImguiSystem renders the visible ones each frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/xrgallery/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	// Name is listed in the panel switcher. Unnamed items are always rendered.
	Name   string
	Hidden bool
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Hosts check it before treating mouse or keyboard input as gameplay input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers the render function of
// every visible ImguiItem to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	var named []*ImguiItem
	for item := range i.Items.Values() {
		if item.Name != "" {
			named = append(named, item.ImguiItem)
		}
		if !item.Hidden && item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}

	if len(named) > 1 {
		frame.Commands.Defer(func() { renderSwitcher(named) })
	}
}

func renderSwitcher(items []*ImguiItem) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Panels", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	for _, item := range items {
		visible := !item.Hidden
		if imgui.Checkbox(item.Name, &visible) {
			item.Hidden = !visible
		}
	}
	imgui.End()
}

// RegisterComponents registers the debug UI component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
