package bubble

import (
	"github.com/decker502/neonbubble/pkg/systems"
)

// onPointerEnter 会话开始：缓存几何、重置闸门并在下一帧启动展开动画
func (b *Bubble) onPointerEnter(ev systems.Event) {
	b.expandCall.cancel(b.host.Frames)

	if g, ok := captureGeometry(b.host.EntityManager, b.handle, b.geometry); ok {
		b.geometry = g
		b.hasGeometry = true
	}

	b.elementStyle().WillChange = "transform"
	b.gate.Reset()
	b.state = StateHovering

	b.expandCall.request(b.host.Frames, b.expand)
}

// onPointerMove 记录最新采样；本帧已有待执行的解析时只更新采样（合并）
func (b *Bubble) onPointerMove(ev systems.Event) {
	b.sample = sampleFromEvent(ev.Pointer)
	b.hasSample = true

	if !b.hasGeometry || b.updateCall.pending {
		return
	}
	b.updateCall.request(b.host.Frames, b.resolve)
}

// onPointerLeave 会话结束：取消待执行的解析与展开、播放收缩动画、设置过渡，
// 可选地在下一帧把变换归零
func (b *Bubble) onPointerLeave(ev systems.Event) {
	frames := b.host.Frames
	b.updateCall.cancel(frames)
	b.expandCall.cancel(frames)

	b.contract()
	b.setTransition()

	if b.settings.Reset {
		b.resetCall.request(frames, b.reset)
	}

	b.gate.Reset()
	b.state = StateLeaving
}
