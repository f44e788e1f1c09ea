package bubble

import (
	"math"
	"strconv"

	"github.com/decker502/neonbubble/pkg/config"
	"github.com/decker502/neonbubble/pkg/systems"
)

// Sample 最近一次指针移动采样（只保留最新值）
type Sample struct {
	PageX, PageY         float64
	ClientX, ClientY     float64
	MovementX, MovementY float64
}

// sampleFromEvent 从指针事件构造采样
func sampleFromEvent(ev systems.PointerEvent) Sample {
	return Sample{
		PageX:     ev.PageX,
		PageY:     ev.PageY,
		ClientX:   ev.ClientX,
		ClientY:   ev.ClientY,
		MovementX: ev.MovementX,
		MovementY: ev.MovementY,
	}
}

// Offset 归一化偏移：以半宽/半高为单位的指针相对中心位移
type Offset struct {
	X, Y float64
}

// IsFinite 偏移两个分量是否都是有限值
func (o Offset) IsFinite() bool {
	return !math.IsNaN(o.X) && !math.IsInf(o.X, 0) &&
		!math.IsNaN(o.Y) && !math.IsInf(o.Y, 0)
}

// ComputeOffset 计算归一化偏移
// 手柄内部时各分量约在 [-1, 1]，展开区域内可略微超出
// 宽或高为 0 时结果为 ±Inf 或 NaN，由调用方检查 IsFinite
func ComputeOffset(s Sample, g Geometry) Offset {
	return Offset{
		X: (s.PageX - g.CenterX) / (g.Width / 2),
		Y: (s.PageY - g.CenterY) / (g.Height / 2),
	}
}

// ComputeAngle 计算指针相对中心的方位角（度）
// 0° 指向正上方，顺时针增加，范围 (-180, 180]
// 指针坐标使用窗口坐标（Client），中心使用页面坐标
func ComputeAngle(s Sample, g Geometry) float64 {
	return math.Atan2(s.ClientX-g.CenterX, -(s.ClientY-g.CenterY)) * (180 / math.Pi)
}

// SameSign 偏移与移动方向同号（都为正或都为负，0 不算同号）
func SameSign(offset, movement float64) bool {
	return (offset > 0 && movement > 0) || (offset < 0 && movement < 0)
}

// MotionGate 方向一致性闸门
//
// 会话开始时关闭；观察到指针沿偏移方向继续移动（远离中心）后打开，
// 之后直到 Reset 前始终保持打开。
type MotionGate struct {
	open bool
}

// Observe 用当前偏移与移动量评估闸门，返回评估后的状态
func (g *MotionGate) Observe(o Offset, s Sample) bool {
	if !g.open {
		if SameSign(o.X, s.MovementX) || SameSign(o.Y, s.MovementY) {
			g.open = true
		}
	}
	return g.open
}

// IsOpen 闸门是否已打开
func (g *MotionGate) IsOpen() bool {
	return g.open
}

// Reset 关闭闸门（会话结束）
func (g *MotionGate) Reset() {
	g.open = false
}

// roundTo2 四舍五入到两位小数，并把 -0 规范为 0
func roundTo2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// FormatTranslate 把平移量格式化为两位小数的字符串，如 "15.00"
func FormatTranslate(v float64) string {
	return strconv.FormatFloat(roundTo2(v), 'f', 2, 64)
}

// ComputeTranslation 根据偏移计算平移量（已四舍五入到两位小数）
func ComputeTranslation(o Offset, offsetMax float64, reverse bool) (x, y float64) {
	sign := 1.0
	if reverse {
		sign = -1
	}
	return roundTo2(sign * o.X * offsetMax), roundTo2(sign * o.Y * offsetMax)
}

// MotionChanged 每个解析帧派发到容器上的通知数据
// TranslateX/Y 总是完整的计算值，不受轴锁定影响
type MotionChanged struct {
	TranslateX string
	TranslateY string
	Angle      float64
}

// Resolution 单帧的解析结果
type Resolution struct {
	Offset     Offset
	TranslateX float64
	TranslateY float64
	Angle      float64
	CanMove    bool
	ApplyX     float64 // 轴锁定后实际写入的平移量
	ApplyY     float64
}

// Event 转换为 MotionChanged 通知
func (r Resolution) Event() MotionChanged {
	return MotionChanged{
		TranslateX: FormatTranslate(r.TranslateX),
		TranslateY: FormatTranslate(r.TranslateY),
		Angle:      r.Angle,
	}
}

// Resolve 根据采样和几何计算一帧的结果并评估闸门
//
// 偏移不是有限值时返回 false：本帧不移动、不评估闸门、不派发通知。
func Resolve(s Sample, g Geometry, settings config.BubbleSettings, gate *MotionGate) (Resolution, bool) {
	offset := ComputeOffset(s, g)
	if !offset.IsFinite() {
		return Resolution{}, false
	}

	tx, ty := ComputeTranslation(offset, settings.OffsetMax, settings.Reverse)
	r := Resolution{
		Offset:     offset,
		TranslateX: tx,
		TranslateY: ty,
		Angle:      ComputeAngle(s, g),
		CanMove:    gate.Observe(offset, s),
		ApplyX:     tx,
		ApplyY:     ty,
	}

	switch settings.Axis {
	case config.AxisX:
		r.ApplyX = 0
	case config.AxisY:
		r.ApplyY = 0
	}

	return r, true
}
