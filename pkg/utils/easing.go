package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
// cubic-bezier 曲线允许 y 越界（如 1.75），用于回弹效果。
//
// 参考：https://easings.net/ 、CSS Easing Functions Level 1

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将进度值限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// CSS 预定义缓动对应的贝塞尔控制点
var namedEasings = map[string][4]float64{
	"ease":        {0.25, 0.1, 0.25, 1},
	"ease-in":     {0.42, 0, 1, 1},
	"ease-out":    {0, 0, 0.58, 1},
	"ease-in-out": {0.42, 0, 0.58, 1},
}

// CubicBezier 构造 CSS cubic-bezier(x1, y1, x2, y2) 缓动函数
//
// x1、x2 必须在 [0, 1] 内（保证曲线在 x 方向单调），y 不受限制。
// 对给定进度 x 先用牛顿迭代求参数 t，不收敛时退回二分法。
func CubicBezier(x1, y1, x2, y2 float64) (EasingFunc, error) {
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, fmt.Errorf("cubic-bezier x values must be in [0, 1], got %v and %v", x1, x2)
	}

	// 多项式系数：B(t) = ((a*t + b)*t + c)*t
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	sampleDX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-7

	solveT := func(x float64) float64 {
		// 牛顿迭代
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < epsilon {
				return t
			}
			d := sampleDX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		// 二分法兜底
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			next := (lo + hi) / 2
			if next == t {
				break
			}
			t = next
		}
		return t
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return sampleY(solveT(x))
	}, nil
}

// ParseEasing 解析 CSS 缓动描述
//
// 支持：
//   - "linear"
//   - "ease"、"ease-in"、"ease-out"、"ease-in-out"
//   - "cubic-bezier(x1, y1, x2, y2)"，数字可省略前导 0（如 ".5"）
//
// 空字符串按 CSS 默认值 "ease" 处理。
func ParseEasing(spec string) (EasingFunc, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		s = "ease"
	}

	if s == "linear" {
		return EaseLinear, nil
	}

	if points, ok := namedEasings[s]; ok {
		return CubicBezier(points[0], points[1], points[2], points[3])
	}

	if strings.HasPrefix(s, "cubic-bezier(") && strings.HasSuffix(s, ")") {
		args := strings.Split(s[len("cubic-bezier("):len(s)-1], ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("cubic-bezier requires 4 arguments, got %d in %q", len(args), spec)
		}
		var v [4]float64
		for i, arg := range args {
			f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cubic-bezier argument %q: %w", arg, err)
			}
			v[i] = f
		}
		return CubicBezier(v[0], v[1], v[2], v[3])
	}

	return nil, fmt.Errorf("unsupported easing %q", spec)
}

// MustParseEasing 解析缓动描述，失败时退回线性缓动
func MustParseEasing(spec string) EasingFunc {
	fn, err := ParseEasing(spec)
	if err != nil {
		return EaseLinear
	}
	return fn
}
