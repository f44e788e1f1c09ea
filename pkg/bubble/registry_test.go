package bubble

import (
	"errors"
	"testing"

	"github.com/decker502/neonbubble/pkg/config"
)

func TestRegistryBind(t *testing.T) {
	f := newFixture(t, nil)
	r := NewRegistry(f.host)

	b1, err := r.Bind(f.container, config.BubbleOptions{})
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	b2, err := r.Bind(f.container, config.BubbleOptions{Reverse: boolPtr(true)})
	if err != nil {
		t.Fatalf("second Bind() error: %v", err)
	}
	if b1 != b2 {
		t.Error("binding an already bound element should return the existing instance")
	}
	if n := f.host.Events.ListenerCount(f.handle); n != 3 {
		t.Errorf("handle listeners = %d, want 3 (no duplicate binding)", n)
	}

	if got, ok := r.Get(f.container); !ok || got != b1 {
		t.Error("Get() should return the bound instance")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryDestroySeversAssociation(t *testing.T) {
	f := newFixture(t, nil)
	r := NewRegistry(f.host)

	b, _ := r.Bind(f.container, config.BubbleOptions{})
	b.Destroy()

	if _, ok := r.Get(f.container); ok {
		t.Error("destroyed instance is still registered")
	}
	if r.Unbind(f.container) {
		t.Error("Unbind() after Destroy() = true, want false")
	}

	// 重新绑定得到新实例
	again, err := r.Bind(f.container, config.BubbleOptions{})
	if err != nil {
		t.Fatalf("rebind error: %v", err)
	}
	if again == b {
		t.Error("rebinding should create a new instance")
	}
	if n := f.host.Events.ListenerCount(f.handle); n != 3 {
		t.Errorf("handle listeners = %d, want 3", n)
	}
}

func TestRegistryBindAll(t *testing.T) {
	f := newFixture(t, nil)
	r := NewRegistry(f.host)

	// 第二个合法容器
	second := f.addNode(0, 0, 0, 50, 50, map[string]string{BindAttribute: "", "data-nb-reverse": "true"})
	f.addNode(second, 0, 0, 20, 20, map[string]string{"data-handle": ""})
	// 缺少手柄的容器
	broken := f.addNode(0, 300, 0, 50, 50, map[string]string{BindAttribute: ""})
	// 非绑定节点
	f.addNode(0, 600, 0, 50, 50, nil)

	bound, err := r.BindAll(BindAttribute, config.BubbleOptions{})
	if len(bound) != 2 {
		t.Fatalf("bound = %d, want 2", len(bound))
	}
	if bound[0].Element() != f.container || bound[1].Element() != second {
		t.Errorf("bound elements = [%d %d], want [%d %d] in document order",
			bound[0].Element(), bound[1].Element(), f.container, second)
	}
	if !bound[1].Settings().Reverse {
		t.Error("second container should pick up its data-nb-reverse attribute")
	}

	var missing *MissingHandleError
	if !errors.As(err, &missing) || missing.Entity != broken {
		t.Errorf("err = %v, want *MissingHandleError for entity %d", err, broken)
	}

	// 再次调用不会重复绑定
	again, _ := r.BindAll(BindAttribute, config.BubbleOptions{})
	if len(again) != 2 || again[0] != bound[0] {
		t.Error("BindAll() should return the existing instances")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryDestroyAll(t *testing.T) {
	f := newFixture(t, nil)
	r := NewRegistry(f.host)

	second := f.addNode(0, 0, 0, 50, 50, map[string]string{BindAttribute: ""})
	secondHandle := f.addNode(second, 0, 0, 20, 20, map[string]string{"data-handle": ""})

	bound, err := r.BindAll(BindAttribute, config.BubbleOptions{})
	if err != nil {
		t.Fatalf("BindAll() error: %v", err)
	}

	f.enter(545, 500)
	f.leave(560, 500)

	r.DestroyAll()

	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	for _, b := range bound {
		if !b.IsDestroyed() {
			t.Errorf("bubble on entity %d not destroyed", b.Element())
		}
	}
	if f.host.Events.ListenerCount(f.handle) != 0 || f.host.Events.ListenerCount(secondHandle) != 0 {
		t.Error("listeners left after DestroyAll()")
	}
	if f.host.Frames.Pending() != 0 || f.host.Timers.Active() != 0 {
		t.Errorf("pending frames = %d, timers = %d, want 0", f.host.Frames.Pending(), f.host.Timers.Active())
	}
}
