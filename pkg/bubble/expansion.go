package bubble

import (
	"log"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/systems"
)

// expansionKeyframes 展开动画关键帧：起点 → 过冲中点 → 稳定终点
//
// 外边距同步收缩，使手柄中心在整个动画中保持不动：
//
//	start: 尺寸 w×h，          外边距 e/2
//	mid:   尺寸 (w+2e)×(h+2e)，外边距 e/2 - e = -e/2
//	end:   尺寸 (w+e)×(h+e)，  外边距 0
func expansionKeyframes(width, height, expansion float64) []components.Keyframe {
	startMargin := expansion / 2
	midWidth := width + expansion*2
	midHeight := height + expansion*2

	return []components.Keyframe{
		{Width: width, Height: height, MarginX: startMargin, MarginY: startMargin},
		{
			Width:   midWidth,
			Height:  midHeight,
			MarginX: startMargin - (midWidth-width)/2,
			MarginY: startMargin - (midHeight-height)/2,
		},
		{Width: width + expansion, Height: height + expansion, MarginX: 0, MarginY: 0},
	}
}

// contractKeyframes 收缩动画关键帧：展开尺寸 → 原始尺寸
func contractKeyframes(width, height, expansion float64) []components.Keyframe {
	return []components.Keyframe{
		{Width: width + expansion, Height: height + expansion, MarginX: 0, MarginY: 0},
		{Width: width, Height: height, MarginX: expansion / 2, MarginY: expansion / 2},
	}
}

// expand 展开动画帧回调（固定 200ms、线性、保持终点）
func (b *Bubble) expand() {
	b.expandCall.fired()

	frames := expansionKeyframes(b.geometry.Width, b.geometry.Height, b.settings.Expansion)
	err := b.host.Animations.Animate(b.handle, frames, systems.AnimationOptions{
		Duration:     expansionDuration,
		FillForwards: true,
	})
	if err != nil {
		log.Printf("[Bubble] Warning: expansion animation failed on entity %d: %v", b.element, err)
	}
}

// contract 收缩动画（时长与缓动来自设置）
func (b *Bubble) contract() {
	frames := contractKeyframes(b.geometry.Width, b.geometry.Height, b.settings.Expansion)
	err := b.host.Animations.Animate(b.handle, frames, systems.AnimationOptions{
		Duration:     b.settings.DurationTime(),
		Easing:       b.settings.Easing,
		FillForwards: true,
	})
	if err != nil {
		log.Printf("[Bubble] Warning: contract animation failed on entity %d: %v", b.element, err)
	}
}
