// Package bubble 实现指针响应的"气泡"效果
//
// 容器内的手柄节点在指针进入时展开，指针移动时容器随指针相对手柄中心的偏移平移，
// 指针离开时手柄收缩、容器按过渡动画回到原位。
//
// # 数据流
//
//	pointerenter → 缓存几何 → 下一帧展开动画
//	pointermove  → 记录采样 → 每帧至多一次 resolve
//	resolve      → 偏移/角度/平移 → 方向闸门 → 写入变换 → 派发 MotionChanged
//	pointerleave → 收缩动画 + 过渡定时器 → （可选）下一帧归零
//
// 所有逻辑都运行在帧回调和事件派发中，单线程执行，不需要加锁。
package bubble

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/config"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/systems"
)

// EventMotionChanged 每个解析帧在容器上派发的事件类型，Detail 为 MotionChanged
const EventMotionChanged systems.EventType = "motionchange"

// State 悬停会话生命周期状态
type State int

const (
	// StateIdle 空闲：上次离开之后没有任何交互
	StateIdle State = iota
	// StateHovering 悬停中：闸门生效，每帧解析指针运动
	StateHovering
	// StateLeaving 离开过渡中：收缩动画与过渡定时器运行
	StateLeaving
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateHovering:
		return "Hovering"
	case StateLeaving:
		return "LeavingTransition"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Host 气泡效果依赖的宿主系统
type Host struct {
	EntityManager *ecs.EntityManager
	Frames        *systems.FrameScheduler
	Timers        *systems.TimerSystem
	Events        *systems.EventSystem
	Animations    *systems.KeyframeAnimationSystem
}

// NewHost 基于实体管理器创建一组新的宿主系统
func NewHost(em *ecs.EntityManager) Host {
	return Host{
		EntityManager: em,
		Frames:        systems.NewFrameScheduler(),
		Timers:        systems.NewTimerSystem(),
		Events:        systems.NewEventSystem(),
		Animations:    systems.NewKeyframeAnimationSystem(em),
	}
}

func (h Host) validate() error {
	if h.EntityManager == nil || h.Frames == nil || h.Timers == nil || h.Events == nil || h.Animations == nil {
		return fmt.Errorf("bubble host is incomplete: %+v", h)
	}
	return nil
}

// Bubble 绑定在一个容器上的气泡效果实例
type Bubble struct {
	host     Host
	element  ecs.EntityID
	handle   ecs.EntityID
	settings config.BubbleSettings

	state       State
	gate        MotionGate
	geometry    Geometry
	hasGeometry bool
	sample      Sample
	hasSample   bool

	// 每个通道最多一个待执行的帧回调
	expandCall frameSlot
	updateCall frameSlot
	resetCall  frameSlot

	transitionTimer systems.TimerID

	listeners []systems.ListenerID
	onDestroy func()
	destroyed bool
}

// New 在容器实体上创建气泡效果
//
// 参数：
//   - host: 宿主系统
//   - element: 容器实体，必须是 UI 节点
//   - opts: 显式选项（优先于容器上的 data-nb-* 属性）
//
// 返回：
//   - *Bubble: 气泡实例
//   - error: *InvalidTargetError、*MissingHandleError 或设置错误
func New(host Host, element ecs.EntityID, opts config.BubbleOptions) (*Bubble, error) {
	if err := host.validate(); err != nil {
		return nil, err
	}

	em := host.EntityManager
	if !systems.IsUINode(em, element) {
		return nil, &InvalidTargetError{Entity: element}
	}

	handle := systems.QuerySelector(em, element, systems.HandleAttribute)
	if handle == 0 {
		return nil, &MissingHandleError{Entity: element, Attribute: systems.HandleAttribute}
	}

	node, _ := ecs.GetComponent[*components.UINodeComponent](em, element)
	settings, err := config.ResolveBubbleSettings(opts, node.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings for entity %d: %w", element, err)
	}

	b := &Bubble{
		host:     host,
		element:  element,
		handle:   handle,
		settings: settings,
	}

	handleStyle := systems.EnsureStyle(em, handle)
	handleStyle.HasMargin = true
	handleStyle.MarginX = settings.Expansion / 2
	handleStyle.MarginY = settings.Expansion / 2

	systems.EnsureStyle(em, element)

	b.attachListeners()

	log.Printf("[Bubble] Bound entity %d (handle %d): %+v", element, handle, settings)
	return b, nil
}

// attachListeners 在手柄上注册指针监听器并记录句柄，销毁时只移除这些监听器
func (b *Bubble) attachListeners() {
	events := b.host.Events
	b.listeners = append(b.listeners,
		events.AddEventListener(b.handle, systems.EventPointerEnter, b.onPointerEnter),
		events.AddEventListener(b.handle, systems.EventPointerMove, b.onPointerMove),
		events.AddEventListener(b.handle, systems.EventPointerLeave, b.onPointerLeave),
	)
}

func (b *Bubble) detachListeners() {
	for _, id := range b.listeners {
		b.host.Events.RemoveEventListener(id)
	}
	b.listeners = nil
}

// Element 返回容器实体
func (b *Bubble) Element() ecs.EntityID { return b.element }

// Handle 返回手柄实体
func (b *Bubble) Handle() ecs.EntityID { return b.handle }

// Settings 返回生效的设置
func (b *Bubble) Settings() config.BubbleSettings { return b.settings }

// State 返回当前生命周期状态
func (b *Bubble) State() State { return b.state }

// CanMove 返回方向闸门是否已打开
func (b *Bubble) CanMove() bool { return b.gate.IsOpen() }

// Geometry 返回缓存的手柄几何以及是否已缓存
func (b *Bubble) Geometry() (Geometry, bool) { return b.geometry, b.hasGeometry }

// IsDestroyed 是否已销毁
func (b *Bubble) IsDestroyed() bool { return b.destroyed }

// InvalidateGeometry 清除缓存的宽高，下次进入时重新测量
// 元素尺寸变化后由调用方显式调用，不会自动触发
func (b *Bubble) InvalidateGeometry() {
	b.geometry.Width = 0
	b.geometry.Height = 0
}

func (b *Bubble) elementStyle() *components.StyleComponent {
	return systems.EnsureStyle(b.host.EntityManager, b.element)
}

// resolve 解析最新采样并写入变换（每帧至多执行一次）
func (b *Bubble) resolve() {
	b.updateCall.fired()
	if !b.hasSample || !b.hasGeometry {
		return
	}

	res, ok := Resolve(b.sample, b.geometry, b.settings, &b.gate)
	if !ok {
		// 几何尺寸为 0 等情况：本帧跳过，下一次指针事件自然恢复
		return
	}

	if res.CanMove {
		style := b.elementStyle()
		style.HasTransform = true
		style.TranslateX = res.ApplyX
		style.TranslateY = res.ApplyY
	}

	b.host.Events.Dispatch(systems.Event{
		Type:   EventMotionChanged,
		Target: b.element,
		Detail: res.Event(),
	})
}

// reset 把容器变换归零（translate3d(0,0,0)）
func (b *Bubble) reset() {
	b.resetCall.fired()
	style := b.elementStyle()
	style.HasTransform = true
	style.TranslateX = 0
	style.TranslateY = 0
}

// setTransition 设置离开过渡，并在 duration 后清除（重复调用时替换旧定时器）
func (b *Bubble) setTransition() {
	b.stopTransitionTimer()

	style := b.elementStyle()
	style.Transition = components.TransitionSpec{
		Duration: b.settings.DurationTime(),
		Easing:   b.settings.Easing,
	}

	b.transitionTimer = b.host.Timers.AfterFunc(b.settings.DurationTime(), b.clearTransition)
}

// clearTransition 过渡定时器到期：清除过渡，离开过渡中的会话回到空闲
func (b *Bubble) clearTransition() {
	b.transitionTimer = 0

	style := b.elementStyle()
	style.Transition = components.TransitionSpec{}

	if b.state == StateLeaving {
		b.state = StateIdle
		style.WillChange = ""
	}
}

func (b *Bubble) stopTransitionTimer() {
	if b.transitionTimer != 0 {
		b.host.Timers.Stop(b.transitionTimer)
		b.transitionTimer = 0
	}
}

// Destroy 释放实例：取消所有帧回调和定时器、移除监听器、清除内联变换、解除与容器的关联
// 可重复调用
func (b *Bubble) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true

	frames := b.host.Frames
	b.expandCall.cancel(frames)
	b.updateCall.cancel(frames)
	b.resetCall.cancel(frames)
	b.stopTransitionTimer()

	style := b.elementStyle()
	style.HasTransform = false
	style.TranslateX = 0
	style.TranslateY = 0
	style.Transition = components.TransitionSpec{}
	style.WillChange = ""

	if b.host.Animations.IsAnimating(b.handle) {
		b.host.Animations.Cancel(b.handle)
	}

	b.detachListeners()

	b.gate.Reset()
	b.state = StateIdle

	if b.onDestroy != nil {
		b.onDestroy()
		b.onDestroy = nil
	}

	log.Printf("[Bubble] Destroyed bubble on entity %d", b.element)
}

// frameSlot 单个通道的帧回调句柄（None / Some(handle)）
type frameSlot struct {
	handle  systems.FrameHandle
	pending bool
}

// request 取消旧请求后请求新的帧回调
func (s *frameSlot) request(frames *systems.FrameScheduler, fn func()) {
	s.cancel(frames)
	s.handle = frames.RequestFrame(fn)
	s.pending = true
}

// cancel 取消待执行的帧回调
func (s *frameSlot) cancel(frames *systems.FrameScheduler) {
	if s.pending {
		frames.CancelFrame(s.handle)
	}
	s.handle = 0
	s.pending = false
}

// fired 回调已执行，清空句柄
func (s *frameSlot) fired() {
	s.handle = 0
	s.pending = false
}

// expansionDuration 展开动画的固定时长（不受 duration 设置影响）
const expansionDuration = 200 * time.Millisecond
