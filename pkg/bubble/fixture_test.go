package bubble

import (
	"testing"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/config"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/systems"
)

// fixture 测试场景：一个容器 + 一个 100x100 手柄，手柄中心位于页面 (500, 500)
type fixture struct {
	t           *testing.T
	em          *ecs.EntityManager
	host        Host
	pointer     *systems.PointerSystem
	transitions *systems.TransitionSystem
	container   ecs.EntityID
	handle      ecs.EntityID
	changes     []MotionChanged
}

func newFixture(t *testing.T, attrs map[string]string) *fixture {
	t.Helper()

	em := ecs.NewEntityManager()
	host := NewHost(em)
	f := &fixture{
		t:           t,
		em:          em,
		host:        host,
		pointer:     systems.NewPointerSystem(em, host.Events),
		transitions: systems.NewTransitionSystem(em),
	}

	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs[BindAttribute] = ""

	// 默认展开量 10：手柄外边距 5，盒子为 (450, 450)-(550, 550)
	f.container = f.addNode(0, 445, 445, 110, 110, attrs)
	f.handle = f.addNode(f.container, 0, 0, 100, 100, map[string]string{systems.HandleAttribute: ""})

	host.Events.AddEventListener(f.container, EventMotionChanged, func(ev systems.Event) {
		f.changes = append(f.changes, ev.Detail.(MotionChanged))
	})
	return f
}

func (f *fixture) addNode(parent ecs.EntityID, x, y, w, h float64, attrs map[string]string) ecs.EntityID {
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.UINodeComponent{
		Parent:     parent,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Attributes: attrs,
	})
	return id
}

func (f *fixture) newBubble(opts config.BubbleOptions) *Bubble {
	f.t.Helper()
	b, err := New(f.host, f.container, opts)
	if err != nil {
		f.t.Fatalf("New() error: %v", err)
	}
	return b
}

func (f *fixture) dispatch(typ systems.EventType, pageX, pageY, movementX, movementY float64) {
	f.host.Events.Dispatch(systems.Event{
		Type:   typ,
		Target: f.handle,
		Pointer: systems.PointerEvent{
			ClientX:   pageX,
			ClientY:   pageY,
			PageX:     pageX,
			PageY:     pageY,
			MovementX: movementX,
			MovementY: movementY,
		},
	})
}

func (f *fixture) enter(x, y float64) { f.dispatch(systems.EventPointerEnter, x, y, 0, 0) }

func (f *fixture) move(x, y, dx, dy float64) { f.dispatch(systems.EventPointerMove, x, y, dx, dy) }

func (f *fixture) leave(x, y float64) { f.dispatch(systems.EventPointerLeave, x, y, 0, 0) }

// frame 执行一帧的帧回调
func (f *fixture) frame() {
	f.host.Frames.Flush()
}

// tick 按宿主的完整顺序推进一帧
func (f *fixture) tick(input systems.PointerInput, dt float64) {
	f.pointer.Update(input)
	f.host.Frames.Flush()
	f.host.Animations.Update(dt)
	f.transitions.Update(dt)
	f.host.Timers.Update(dt)
}

func (f *fixture) containerStyle() *components.StyleComponent {
	style, ok := ecs.GetComponent[*components.StyleComponent](f.em, f.container)
	if !ok {
		f.t.Fatal("container has no style component")
	}
	return style
}

func (f *fixture) handleStyle() *components.StyleComponent {
	style, ok := ecs.GetComponent[*components.StyleComponent](f.em, f.handle)
	if !ok {
		f.t.Fatal("handle has no style component")
	}
	return style
}

func (f *fixture) lastChange() MotionChanged {
	f.t.Helper()
	if len(f.changes) == 0 {
		f.t.Fatal("no MotionChanged notification received")
	}
	return f.changes[len(f.changes)-1]
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func stringPtr(v string) *string  { return &v }
