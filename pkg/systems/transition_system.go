package systems

import (
	"time"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/utils"
)

// TransitionSystem 变换过渡系统（相当于 CSS transition: transform）
//
// 规则：
//   - 没有过渡设置时，显示值立即等于目标值
//   - 有过渡设置时，目标值变化会从当前显示值开始按缓动逼近新目标
//   - 过渡设置被清除时，进行中的过渡立即结束（跳到目标值）
type TransitionSystem struct {
	entityManager *ecs.EntityManager
	easingCache   map[string]utils.EasingFunc
}

// NewTransitionSystem 创建过渡系统
func NewTransitionSystem(em *ecs.EntityManager) *TransitionSystem {
	return &TransitionSystem{
		entityManager: em,
		easingCache:   make(map[string]utils.EasingFunc),
	}
}

// Update 推进所有变换过渡
// deltaTime: 距离上一帧的时间（秒）
func (s *TransitionSystem) Update(deltaTime float64) {
	dt := time.Duration(deltaTime * float64(time.Second))

	for _, id := range ecs.GetEntitiesWith1[*components.StyleComponent](s.entityManager) {
		style, _ := ecs.GetComponent[*components.StyleComponent](s.entityManager, id)
		s.updateStyle(style, dt)
	}
}

func (s *TransitionSystem) updateStyle(style *components.StyleComponent, dt time.Duration) {
	targetX, targetY := 0.0, 0.0
	if style.HasTransform {
		targetX, targetY = style.TranslateX, style.TranslateY
	}

	if !style.Transition.Active() {
		style.Tween = components.TransformTween{}
		style.RenderedX, style.RenderedY = targetX, targetY
		return
	}

	tween := &style.Tween
	if !tween.Active || tween.ToX != targetX || tween.ToY != targetY {
		if style.RenderedX == targetX && style.RenderedY == targetY {
			tween.Active = false
			return
		}
		// 目标变化：从当前显示值重新开始
		*tween = components.TransformTween{
			Active: true,
			FromX:  style.RenderedX,
			FromY:  style.RenderedY,
			ToX:    targetX,
			ToY:    targetY,
		}
	}

	tween.Elapsed += dt
	progress := utils.Clamp01(float64(tween.Elapsed) / float64(style.Transition.Duration))
	eased := s.easing(style.Transition.Easing)(progress)

	style.RenderedX = utils.Lerp(tween.FromX, tween.ToX, eased)
	style.RenderedY = utils.Lerp(tween.FromY, tween.ToY, eased)

	if progress >= 1 {
		style.RenderedX, style.RenderedY = tween.ToX, tween.ToY
		tween.Active = false
	}
}

func (s *TransitionSystem) easing(spec string) utils.EasingFunc {
	if fn, ok := s.easingCache[spec]; ok {
		return fn
	}
	fn := utils.MustParseEasing(spec)
	s.easingCache[spec] = fn
	return fn
}
