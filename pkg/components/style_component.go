package components

import "time"

// StyleComponent 内联样式组件
// 保存会被效果代码直接写入的样式属性：变换、过渡、will-change 以及盒模型覆盖
//
// 变换分两层：
//   - TranslateX/Y 是写入的目标值（相当于 style.transform）
//   - RenderedX/Y 是当前实际显示的值，由 TransitionSystem 按过渡设置逼近目标值
type StyleComponent struct {
	// ===== transform: translate3d(x, y, 0) =====
	// HasTransform 是否设置了内联变换
	HasTransform bool
	// TranslateX, TranslateY 目标平移量（像素）
	TranslateX, TranslateY float64
	// RenderedX, RenderedY 当前显示的平移量（像素）
	RenderedX, RenderedY float64

	// ===== transition =====
	// Transition 当前生效的过渡设置，Duration 为 0 表示无过渡
	Transition TransitionSpec
	// Tween 正在进行的过渡插值状态
	Tween TransformTween

	// WillChange 性能提示（仅记录，不影响计算）
	WillChange string

	// ===== 盒模型覆盖（由关键帧动画写入）=====
	// HasSize 是否覆盖固有尺寸
	HasSize bool
	// Width, Height 覆盖后的尺寸
	Width, Height float64
	// HasMargin 是否设置了外边距
	HasMargin bool
	// MarginX, MarginY 水平/垂直外边距（可为负值）
	MarginX, MarginY float64
}

// TransitionSpec 描述 CSS transition 的时长与缓动
type TransitionSpec struct {
	Duration time.Duration
	// Easing 缓动描述，如 "ease"、"cubic-bezier(.5,0,.5,1.75)"
	Easing string
}

// Active 是否存在有效过渡
func (t TransitionSpec) Active() bool {
	return t.Duration > 0
}

// TransformTween 过渡插值状态
type TransformTween struct {
	Active       bool
	FromX, FromY float64
	ToX, ToY     float64
	Elapsed      time.Duration
}
