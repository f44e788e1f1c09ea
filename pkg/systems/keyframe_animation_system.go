package systems

import (
	"fmt"
	"math"
	"time"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/utils"
)

// AnimationOptions 关键帧动画参数（相当于 element.animate 的第二个参数）
type AnimationOptions struct {
	Duration time.Duration
	// Easing CSS 缓动描述，空字符串表示线性
	Easing string
	// FillForwards 结束后保持最后一帧
	FillForwards bool
}

// KeyframeAnimationSystem 关键帧动画系统
// 按时间插值关键帧并把盒模型值写入 StyleComponent
type KeyframeAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewKeyframeAnimationSystem 创建关键帧动画系统
func NewKeyframeAnimationSystem(em *ecs.EntityManager) *KeyframeAnimationSystem {
	return &KeyframeAnimationSystem{entityManager: em}
}

// Animate 在实体上启动关键帧动画，替换正在播放的动画
//
// 第一帧立即写入样式，与浏览器在动画开始时立即应用起始关键帧一致。
func (s *KeyframeAnimationSystem) Animate(id ecs.EntityID, keyframes []components.Keyframe, opts AnimationOptions) error {
	if len(keyframes) < 2 {
		return fmt.Errorf("animation requires at least 2 keyframes, got %d", len(keyframes))
	}
	if !IsUINode(s.entityManager, id) {
		return fmt.Errorf("entity %d is not a UI node", id)
	}

	easing := utils.EasingFunc(utils.EaseLinear)
	if opts.Easing != "" {
		fn, err := utils.ParseEasing(opts.Easing)
		if err != nil {
			return fmt.Errorf("invalid animation easing: %w", err)
		}
		easing = fn
	}

	style := EnsureStyle(s.entityManager, id)

	anim := &components.KeyframeAnimationComponent{
		Keyframes:      append([]components.Keyframe(nil), keyframes...),
		Duration:       opts.Duration,
		Easing:         easing,
		FillForwards:   opts.FillForwards,
		SavedHasSize:   style.HasSize,
		SavedWidth:     style.Width,
		SavedHeight:    style.Height,
		SavedHasMargin: style.HasMargin,
		SavedMarginX:   style.MarginX,
		SavedMarginY:   style.MarginY,
	}

	// 替换旧动画时继承其保存的原始样式，避免把动画中间值当作原始值
	if prev, ok := ecs.GetComponent[*components.KeyframeAnimationComponent](s.entityManager, id); ok && !prev.Finished {
		anim.SavedHasSize = prev.SavedHasSize
		anim.SavedWidth = prev.SavedWidth
		anim.SavedHeight = prev.SavedHeight
		anim.SavedHasMargin = prev.SavedHasMargin
		anim.SavedMarginX = prev.SavedMarginX
		anim.SavedMarginY = prev.SavedMarginY
	}

	ecs.AddComponent(s.entityManager, id, anim)
	applyKeyframe(style, sampleKeyframes(anim.Keyframes, 0))
	return nil
}

// Cancel 取消实体上的动画并恢复动画前的盒模型样式
func (s *KeyframeAnimationSystem) Cancel(id ecs.EntityID) {
	anim, ok := ecs.GetComponent[*components.KeyframeAnimationComponent](s.entityManager, id)
	if !ok {
		return
	}
	if style, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, id); ok {
		restoreStyle(style, anim)
	}
	ecs.RemoveComponent[*components.KeyframeAnimationComponent](s.entityManager, id)
}

// IsAnimating 检查实体是否有正在播放的动画
func (s *KeyframeAnimationSystem) IsAnimating(id ecs.EntityID) bool {
	anim, ok := ecs.GetComponent[*components.KeyframeAnimationComponent](s.entityManager, id)
	return ok && !anim.Finished
}

// Update 推进所有关键帧动画
// deltaTime: 距离上一帧的时间（秒）
func (s *KeyframeAnimationSystem) Update(deltaTime float64) {
	dt := time.Duration(deltaTime * float64(time.Second))

	entities := ecs.GetEntitiesWith2[*components.KeyframeAnimationComponent, *components.StyleComponent](s.entityManager)
	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.KeyframeAnimationComponent](s.entityManager, id)
		style, _ := ecs.GetComponent[*components.StyleComponent](s.entityManager, id)
		if anim.Finished {
			continue
		}

		anim.Elapsed += dt
		progress := 1.0
		if anim.Duration > 0 {
			progress = utils.Clamp01(float64(anim.Elapsed) / float64(anim.Duration))
		}

		if progress >= 1 {
			anim.Finished = true
			if anim.FillForwards {
				applyKeyframe(style, anim.Keyframes[len(anim.Keyframes)-1])
			} else {
				restoreStyle(style, anim)
			}
			continue
		}

		applyKeyframe(style, sampleKeyframes(anim.Keyframes, anim.Easing(progress)))
	}
}

// sampleKeyframes 在均匀分布的关键帧之间插值
// t 可以越界（回弹缓动），越界部分按首/尾区间外推
func sampleKeyframes(frames []components.Keyframe, t float64) components.Keyframe {
	segments := float64(len(frames) - 1)
	pos := t * segments
	index := int(math.Floor(pos))
	if index < 0 {
		index = 0
	}
	if index > len(frames)-2 {
		index = len(frames) - 2
	}
	local := pos - float64(index)

	a, b := frames[index], frames[index+1]
	return components.Keyframe{
		Width:   utils.Lerp(a.Width, b.Width, local),
		Height:  utils.Lerp(a.Height, b.Height, local),
		MarginX: utils.Lerp(a.MarginX, b.MarginX, local),
		MarginY: utils.Lerp(a.MarginY, b.MarginY, local),
	}
}

func applyKeyframe(style *components.StyleComponent, kf components.Keyframe) {
	style.HasSize = true
	style.Width = kf.Width
	style.Height = kf.Height
	style.HasMargin = true
	style.MarginX = kf.MarginX
	style.MarginY = kf.MarginY
}

func restoreStyle(style *components.StyleComponent, anim *components.KeyframeAnimationComponent) {
	style.HasSize = anim.SavedHasSize
	style.Width = anim.SavedWidth
	style.Height = anim.SavedHeight
	style.HasMargin = anim.SavedHasMargin
	style.MarginX = anim.SavedMarginX
	style.MarginY = anim.SavedMarginY
}

// EnsureStyle 返回实体的内联样式组件，不存在时创建
func EnsureStyle(em *ecs.EntityManager, id ecs.EntityID) *components.StyleComponent {
	style, ok := ecs.GetComponent[*components.StyleComponent](em, id)
	if !ok {
		style = &components.StyleComponent{}
		ecs.AddComponent(em, id, style)
	}
	return style
}
