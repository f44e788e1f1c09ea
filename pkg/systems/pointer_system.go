package systems

import (
	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
)

// PointerInput 单帧的指针采样（窗口坐标）
type PointerInput struct {
	X, Y float64
	// Present 指针是否在窗口内（鼠标移出窗口或触摸结束时为 false）
	Present bool
}

// PointerSystem 指针事件系统
// 负责把每帧的指针采样转换为 enter/move/leave 事件并派发给监听的节点
//
// 职责：
//   - 对所有注册了指针监听器的节点做命中测试（页面坐标）
//   - 检测悬停变化，派发 pointerleave / pointerenter
//   - 指针移动时向悬停节点派发 pointermove（带位移量）
//
// 派发顺序：先 leave，再 enter，最后 move。
// 悬停状态每帧重新计算，节点移动或变形时即使指针静止也会产生 enter/leave。
type PointerSystem struct {
	entityManager *ecs.EntityManager
	events        *EventSystem

	scrollX, scrollY float64

	hasLast      bool
	lastX, lastY float64
}

// NewPointerSystem 创建指针事件系统
func NewPointerSystem(em *ecs.EntityManager, events *EventSystem) *PointerSystem {
	return &PointerSystem{
		entityManager: em,
		events:        events,
	}
}

// SetScroll 设置页面滚动偏移
func (s *PointerSystem) SetScroll(x, y float64) {
	s.scrollX, s.scrollY = x, y
}

// Scroll 返回页面滚动偏移
func (s *PointerSystem) Scroll() (x, y float64) {
	return s.scrollX, s.scrollY
}

// Update 处理一帧的指针采样
func (s *PointerSystem) Update(input PointerInput) {
	moved := false
	movementX, movementY := 0.0, 0.0
	if input.Present {
		if s.hasLast {
			movementX = input.X - s.lastX
			movementY = input.Y - s.lastY
			moved = movementX != 0 || movementY != 0
		} else {
			moved = true // 指针刚进入窗口
		}
	}

	ev := PointerEvent{
		ClientX:   input.X,
		ClientY:   input.Y,
		PageX:     input.X + s.scrollX,
		PageY:     input.Y + s.scrollY,
		MovementX: movementX,
		MovementY: movementY,
	}

	targets := s.listeningNodes()

	entered := make([]ecs.EntityID, 0)
	hovered := make([]ecs.EntityID, 0)
	for _, id := range targets {
		hover := s.hoverComponent(id)
		inside := false
		if input.Present {
			if rect, ok := PageRect(s.entityManager, id); ok {
				inside = rect.Contains(ev.PageX, ev.PageY)
			}
		}

		switch {
		case hover.IsHovered && !inside:
			hover.IsHovered = false
			s.dispatch(EventPointerLeave, id, ev)
		case !hover.IsHovered && inside:
			hover.IsHovered = true
			entered = append(entered, id)
		}
		if inside {
			hovered = append(hovered, id)
		}
	}

	for _, id := range entered {
		s.dispatch(EventPointerEnter, id, ev)
	}

	if moved {
		for _, id := range hovered {
			s.dispatch(EventPointerMove, id, ev)
		}
	}

	if input.Present {
		s.hasLast = true
		s.lastX, s.lastY = input.X, input.Y
	} else {
		s.hasLast = false
	}
}

// listeningNodes 返回所有注册了指针监听器的 UI 节点
func (s *PointerSystem) listeningNodes() []ecs.EntityID {
	nodes := ecs.GetEntitiesWith1[*components.UINodeComponent](s.entityManager)
	result := make([]ecs.EntityID, 0, len(nodes))
	for _, id := range nodes {
		if s.events.HasListeners(id, EventPointerEnter, EventPointerMove, EventPointerLeave) {
			result = append(result, id)
			continue
		}
		// 监听器被移除的节点清除悬停状态，重新绑定后从 enter 开始
		if hover, ok := ecs.GetComponent[*components.PointerHoverComponent](s.entityManager, id); ok {
			hover.IsHovered = false
		}
	}
	return result
}

func (s *PointerSystem) hoverComponent(id ecs.EntityID) *components.PointerHoverComponent {
	hover, ok := ecs.GetComponent[*components.PointerHoverComponent](s.entityManager, id)
	if !ok {
		hover = &components.PointerHoverComponent{}
		ecs.AddComponent(s.entityManager, id, hover)
	}
	return hover
}

func (s *PointerSystem) dispatch(typ EventType, target ecs.EntityID, ev PointerEvent) {
	s.events.Dispatch(Event{
		Type:    typ,
		Target:  target,
		Pointer: ev,
	})
}
