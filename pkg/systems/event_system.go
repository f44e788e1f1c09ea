package systems

import "github.com/decker502/neonbubble/pkg/ecs"

// EventType 事件类型
type EventType string

// 指针事件类型（语义同 DOM 的 mouseenter/mousemove/mouseleave）
const (
	EventPointerEnter EventType = "pointerenter"
	EventPointerMove  EventType = "pointermove"
	EventPointerLeave EventType = "pointerleave"
)

// PointerEvent 指针事件数据
//
// Client 坐标相对窗口（视口），Page 坐标相对页面（Client + 滚动偏移）。
// Movement 是与上一次指针采样之间的位移（窗口像素）。
type PointerEvent struct {
	ClientX, ClientY     float64
	PageX, PageY         float64
	MovementX, MovementY float64
}

// Event 派发到实体上的事件
type Event struct {
	Type    EventType
	Target  ecs.EntityID
	Pointer PointerEvent
	// Detail 自定义事件携带的数据
	Detail interface{}
}

// ListenerID 监听器句柄，用于精确移除自己添加的监听器
type ListenerID uint64

// Listener 事件回调
type Listener func(Event)

type listenerEntry struct {
	id     ListenerID
	target ecs.EntityID
	typ    EventType
	fn     Listener
}

// EventSystem 实体事件分发器（相当于 addEventListener/dispatchEvent）
type EventSystem struct {
	nextID    ListenerID
	listeners map[ecs.EntityID][]listenerEntry
}

// NewEventSystem 创建事件系统
func NewEventSystem() *EventSystem {
	return &EventSystem{
		nextID:    1,
		listeners: make(map[ecs.EntityID][]listenerEntry),
	}
}

// AddEventListener 为实体注册监听器
func (es *EventSystem) AddEventListener(target ecs.EntityID, typ EventType, fn Listener) ListenerID {
	id := es.nextID
	es.nextID++
	es.listeners[target] = append(es.listeners[target], listenerEntry{
		id:     id,
		target: target,
		typ:    typ,
		fn:     fn,
	})
	return id
}

// RemoveEventListener 移除监听器，返回是否找到
func (es *EventSystem) RemoveEventListener(id ListenerID) bool {
	for target, entries := range es.listeners {
		for i, entry := range entries {
			if entry.id != id {
				continue
			}
			// 复制而不是原地修改：派发中的快照不受影响
			remaining := make([]listenerEntry, 0, len(entries)-1)
			remaining = append(remaining, entries[:i]...)
			remaining = append(remaining, entries[i+1:]...)
			if len(remaining) == 0 {
				delete(es.listeners, target)
			} else {
				es.listeners[target] = remaining
			}
			return true
		}
	}
	return false
}

// Dispatch 按注册顺序调用目标实体上匹配类型的监听器
// 派发期间移除的监听器在本次派发中不再被调用
func (es *EventSystem) Dispatch(ev Event) {
	snapshot := es.listeners[ev.Target]
	for _, entry := range snapshot {
		if entry.typ != ev.Type {
			continue
		}
		if !es.isRegistered(ev.Target, entry.id) {
			continue
		}
		entry.fn(ev)
	}
}

func (es *EventSystem) isRegistered(target ecs.EntityID, id ListenerID) bool {
	for _, entry := range es.listeners[target] {
		if entry.id == id {
			return true
		}
	}
	return false
}

// ListenerCount 返回实体上的监听器总数
func (es *EventSystem) ListenerCount(target ecs.EntityID) int {
	return len(es.listeners[target])
}

// HasListeners 检查实体上是否有指定类型之一的监听器
func (es *EventSystem) HasListeners(target ecs.EntityID, types ...EventType) bool {
	for _, entry := range es.listeners[target] {
		for _, typ := range types {
			if entry.typ == typ {
				return true
			}
		}
	}
	return false
}
