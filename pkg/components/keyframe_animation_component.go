package components

import "time"

// Keyframe 盒模型关键帧
// 关键帧在时间轴上均匀分布：n 个关键帧的偏移依次为 0, 1/(n-1), ..., 1
type Keyframe struct {
	Width, Height    float64
	MarginX, MarginY float64
}

// KeyframeAnimationComponent 关键帧动画组件（相当于 element.animate()）
//
// 每个实体同一时间只有一个关键帧动画，新动画会替换旧动画。
type KeyframeAnimationComponent struct {
	// Keyframes 至少两个关键帧
	Keyframes []Keyframe
	// Duration 动画总时长
	Duration time.Duration
	// Elapsed 已播放时长
	Elapsed time.Duration
	// Easing 缓动函数，t ∈ [0, 1]
	Easing func(t float64) float64
	// FillForwards 结束后是否保持最后一帧
	FillForwards bool
	// Finished 是否已播放完成
	Finished bool

	// 动画开始前的盒模型样式，FillForwards 为 false 时结束后恢复
	SavedHasSize   bool
	SavedWidth     float64
	SavedHeight    float64
	SavedHasMargin bool
	SavedMarginX   float64
	SavedMarginY   float64
}
