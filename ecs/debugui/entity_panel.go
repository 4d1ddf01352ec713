package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/xrgallery/ecs"
)

// Field is one exported field of a component, formatted for display.
type Field struct {
	Name  string
	Value string
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]int
}

func (fc *fieldCache) exported(t reflect.Type) []int {
	fc.mu.RLock()
	cached, ok := fc.fields[t]
	fc.mu.RUnlock()
	if ok {
		return cached
	}

	var indices []int
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			indices = append(indices, i)
		}
	}

	fc.mu.Lock()
	fc.fields[t] = indices
	fc.mu.Unlock()
	return indices
}

var componentFields = &fieldCache{fields: make(map[reflect.Type][]int)}

// DescribeComponent lists the exported fields of a component value or pointer.
// Non-struct components come back as a single field named after their type.
func DescribeComponent(component any) []Field {
	v := reflect.ValueOf(component)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []Field{{Name: v.Type().Name(), Value: fmt.Sprintf("%v", v.Interface())}}
	}

	t := v.Type()
	var out []Field
	for _, i := range componentFields.exported(t) {
		f := v.Field(i)
		value := fmt.Sprintf("%v", f.Interface())
		if f.Kind() == reflect.Func {
			value = "func"
			if f.IsNil() {
				value = "nil"
			}
		}
		out = append(out, Field{Name: t.Field(i).Name, Value: value})
	}
	return out
}

// EntityPanel browses archetypes and shows the components of a selected entity.
type EntityPanel struct {
	storage  *ecs.Storage
	selected ecs.EntityId
	filter   string
}

func NewEntityPanel(storage *ecs.Storage) *EntityPanel {
	return &EntityPanel{storage: storage}
}

func (ep *EntityPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 460), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Component filter...", &ep.filter, imgui.InputTextFlagsNone, nil)
	filter := strings.ToLower(ep.filter)

	for _, archetype := range ep.storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		label := strings.Join(names, ", ")
		if filter != "" && !strings.Contains(strings.ToLower(label), filter) {
			continue
		}

		if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d)##%X", label, archetype.Len(), archetype.ID())) {
			continue
		}
		for id := range archetype.Iter() {
			if imgui.SelectableBoolV(fmt.Sprintf("%d", id), ep.selected == id, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				ep.selected = id
			}
		}
		imgui.TreePop()
	}

	imgui.Separator()
	ep.renderSelected()
	imgui.End()
}

func (ep *EntityPanel) renderSelected() {
	if !ep.storage.Alive(ep.selected) {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d", ep.selected))
	for _, arch := range ep.storage.Archetypes() {
		if arch.ID() != ep.selected.ArchetypeId() {
			continue
		}
		for _, t := range arch.Types() {
			imgui.Text(t.String())
			imgui.Indent()
			for _, f := range DescribeComponent(ep.storage.GetComponent(ep.selected, t)) {
				imgui.Text(fmt.Sprintf("%s: %s", f.Name, f.Value))
			}
			imgui.Unindent()
		}
	}
}
