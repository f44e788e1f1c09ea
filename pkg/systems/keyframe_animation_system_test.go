package systems

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestKeyframeAnimationThreeFrames 三个关键帧均匀分布在时间轴上
func TestKeyframeAnimationThreeFrames(t *testing.T) {
	em := ecs.NewEntityManager()
	anim := NewKeyframeAnimationSystem(em)
	id := newTestNode(em, 0, 0, 0, 100, 100, nil)

	frames := []components.Keyframe{
		{Width: 100, Height: 100, MarginX: 5, MarginY: 5},
		{Width: 120, Height: 120, MarginX: -5, MarginY: -5},
		{Width: 110, Height: 110, MarginX: 0, MarginY: 0},
	}
	err := anim.Animate(id, frames, AnimationOptions{Duration: 200 * time.Millisecond, FillForwards: true})
	if err != nil {
		t.Fatalf("Animate error: %v", err)
	}

	style, _ := ecs.GetComponent[*components.StyleComponent](em, id)
	if style.Width != 100 || style.MarginX != 5 {
		t.Errorf("first keyframe should apply immediately, got width=%v margin=%v", style.Width, style.MarginX)
	}

	anim.Update(0.05) // 25%：起点与中点之间
	if !approxEqual(style.Width, 110) || !approxEqual(style.MarginX, 0) {
		t.Errorf("at 25%%: width=%v margin=%v, want 110/0", style.Width, style.MarginX)
	}

	anim.Update(0.05) // 50%：中点
	if !approxEqual(style.Width, 120) {
		t.Errorf("at 50%%: width=%v, want 120", style.Width)
	}

	anim.Update(0.15) // 结束
	if style.Width != 110 || style.MarginX != 0 {
		t.Errorf("fill forwards: width=%v margin=%v, want 110/0", style.Width, style.MarginX)
	}
	if anim.IsAnimating(id) {
		t.Error("animation should be finished")
	}
}

// TestKeyframeAnimationRestoreWithoutFill 不保持终点时恢复动画前的样式
func TestKeyframeAnimationRestoreWithoutFill(t *testing.T) {
	em := ecs.NewEntityManager()
	anim := NewKeyframeAnimationSystem(em)
	id := newTestNode(em, 0, 0, 0, 100, 100, nil)

	style := EnsureStyle(em, id)
	style.HasMargin = true
	style.MarginX, style.MarginY = 5, 5

	frames := []components.Keyframe{{Width: 100, Height: 100}, {Width: 200, Height: 200}}
	if err := anim.Animate(id, frames, AnimationOptions{Duration: 100 * time.Millisecond}); err != nil {
		t.Fatalf("Animate error: %v", err)
	}
	anim.Update(1)

	if style.HasSize {
		t.Error("size override should be removed after a non-fill animation")
	}
	if !style.HasMargin || style.MarginX != 5 {
		t.Errorf("margin should be restored to 5, got %v", style.MarginX)
	}
}

// TestKeyframeAnimationReplace 新动画替换旧动画并继承原始样式
func TestKeyframeAnimationReplace(t *testing.T) {
	em := ecs.NewEntityManager()
	anim := NewKeyframeAnimationSystem(em)
	id := newTestNode(em, 0, 0, 0, 100, 100, nil)

	grow := []components.Keyframe{{Width: 100, Height: 100}, {Width: 200, Height: 200}}
	shrink := []components.Keyframe{{Width: 150, Height: 150}, {Width: 50, Height: 50}}

	_ = anim.Animate(id, grow, AnimationOptions{Duration: time.Second})
	anim.Update(0.5)
	_ = anim.Animate(id, shrink, AnimationOptions{Duration: time.Second})

	style, _ := ecs.GetComponent[*components.StyleComponent](em, id)
	if style.Width != 150 {
		t.Errorf("replacement should start at its own first keyframe, got %v", style.Width)
	}

	anim.Cancel(id)
	if style.HasSize {
		t.Error("Cancel should restore the style from before the first animation")
	}
	if anim.IsAnimating(id) {
		t.Error("no animation expected after Cancel")
	}
}

// TestKeyframeAnimationOvershootEasing 回弹缓动可以越过终点
func TestKeyframeAnimationOvershootEasing(t *testing.T) {
	em := ecs.NewEntityManager()
	anim := NewKeyframeAnimationSystem(em)
	id := newTestNode(em, 0, 0, 0, 100, 100, nil)

	frames := []components.Keyframe{{Width: 110, Height: 110}, {Width: 100, Height: 100}}
	err := anim.Animate(id, frames, AnimationOptions{
		Duration:     time.Second,
		Easing:       "cubic-bezier(.5,0,.5,1.75)",
		FillForwards: true,
	})
	if err != nil {
		t.Fatalf("Animate error: %v", err)
	}

	style, _ := ecs.GetComponent[*components.StyleComponent](em, id)
	minWidth := style.Width
	for i := 0; i < 100; i++ {
		anim.Update(0.01)
		if style.Width < minWidth {
			minWidth = style.Width
		}
	}
	if minWidth >= 100 {
		t.Errorf("overshoot easing should dip below the end width, min=%v", minWidth)
	}
	if style.Width != 100 {
		t.Errorf("final width = %v, want 100", style.Width)
	}
}

// TestKeyframeAnimationErrors 测试非法参数
func TestKeyframeAnimationErrors(t *testing.T) {
	em := ecs.NewEntityManager()
	anim := NewKeyframeAnimationSystem(em)
	id := newTestNode(em, 0, 0, 0, 100, 100, nil)
	two := []components.Keyframe{{}, {}}

	if err := anim.Animate(id, two[:1], AnimationOptions{}); err == nil {
		t.Error("single keyframe should be rejected")
	}
	if err := anim.Animate(em.CreateEntity(), two, AnimationOptions{}); err == nil {
		t.Error("non-UI entity should be rejected")
	}
	if err := anim.Animate(id, two, AnimationOptions{Easing: "wobble"}); err == nil {
		t.Error("unknown easing should be rejected")
	}
}
