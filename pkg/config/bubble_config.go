package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AttributePrefix 声明式配置属性前缀，如 data-nb-reverse="true"
const AttributePrefix = "data-nb-"

// 轴锁定取值
const (
	AxisNone = ""
	AxisX    = "x"
	AxisY    = "y"
)

// BubbleSettings 气泡效果的最终生效设置（只读，由核心逻辑消费）
type BubbleSettings struct {
	Expansion float64 `yaml:"expansion"` // 手柄展开的像素量
	OffsetMax float64 `yaml:"offsetMax"` // 偏移为 ±1 时的最大平移量（像素）
	Easing    string  `yaml:"easing"`    // 离开时收缩动画与过渡的缓动曲线
	Duration  float64 `yaml:"duration"`  // 离开动画与过渡时长（毫秒）
	Reverse   bool    `yaml:"reverse"`   // 反转平移方向
	Axis      string  `yaml:"axis"`      // 锁定的轴："x"、"y" 或空
	Reset     bool    `yaml:"reset"`     // 离开后是否把变换归零
}

// DefaultBubbleSettings 返回内置默认设置
func DefaultBubbleSettings() BubbleSettings {
	return BubbleSettings{
		Expansion: 10,
		OffsetMax: 15,
		Easing:    "cubic-bezier(.5,0,.5,1.75)",
		Duration:  300,
		Reverse:   false,
		Axis:      AxisNone,
		Reset:     true,
	}
}

// DurationTime 返回 Duration 对应的 time.Duration
func (s BubbleSettings) DurationTime() time.Duration {
	return time.Duration(s.Duration * float64(time.Millisecond))
}

// Validate 校验设置是否合法
func (s BubbleSettings) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("duration must be >= 0, got %v", s.Duration)
	}
	if s.Expansion < 0 {
		return fmt.Errorf("expansion must be >= 0, got %v", s.Expansion)
	}
	switch s.Axis {
	case AxisNone, AxisX, AxisY:
	default:
		return fmt.Errorf("axis must be \"x\", \"y\" or empty, got %q", s.Axis)
	}
	return nil
}

// BubbleOptions 构造时显式传入的选项
// 字段为 nil 表示未指定，交由属性或默认值决定
type BubbleOptions struct {
	Expansion *float64 `yaml:"expansion,omitempty"`
	OffsetMax *float64 `yaml:"offsetMax,omitempty"`
	Easing    *string  `yaml:"easing,omitempty"`
	Duration  *float64 `yaml:"duration,omitempty"`
	Reverse   *bool    `yaml:"reverse,omitempty"`
	Axis      *string  `yaml:"axis,omitempty"`
	Reset     *bool    `yaml:"reset,omitempty"`
}

// Merge 返回 o 覆盖 base 后的选项（o 中非 nil 的字段优先）
func (o BubbleOptions) Merge(base BubbleOptions) BubbleOptions {
	merged := base
	if o.Expansion != nil {
		merged.Expansion = o.Expansion
	}
	if o.OffsetMax != nil {
		merged.OffsetMax = o.OffsetMax
	}
	if o.Easing != nil {
		merged.Easing = o.Easing
	}
	if o.Duration != nil {
		merged.Duration = o.Duration
	}
	if o.Reverse != nil {
		merged.Reverse = o.Reverse
	}
	if o.Axis != nil {
		merged.Axis = o.Axis
	}
	if o.Reset != nil {
		merged.Reset = o.Reset
	}
	return merged
}

// IsEmpty 是否没有任何显式选项
func (o BubbleOptions) IsEmpty() bool {
	return o == BubbleOptions{}
}

// ResolveBubbleSettings 按优先级合并设置：显式选项 > 元素属性 > 内置默认值
//
// 属性值先按 YAML/JSON 标量解析（"true"、"15"、"\"x\""），解析失败时使用原始字符串。
// 类型不匹配的属性会记录警告并使用默认值。
//
// 参数：
//   - opts: 构造时传入的显式选项
//   - attrs: 元素的声明式属性（可为 nil）
//
// 返回：
//   - BubbleSettings: 合并后的设置
//   - error: 合并结果不合法时返回错误
func ResolveBubbleSettings(opts BubbleOptions, attrs map[string]string) (BubbleSettings, error) {
	s := DefaultBubbleSettings()

	resolveFloat(&s.Expansion, opts.Expansion, attrs, "expansion")
	resolveFloat(&s.OffsetMax, opts.OffsetMax, attrs, "offsetMax")
	resolveString(&s.Easing, opts.Easing, attrs, "easing")
	resolveFloat(&s.Duration, opts.Duration, attrs, "duration")
	resolveBool(&s.Reverse, opts.Reverse, attrs, "reverse")
	resolveString(&s.Axis, opts.Axis, attrs, "axis")
	resolveBool(&s.Reset, opts.Reset, attrs, "reset")

	s.Axis = normalizeAxis(s.Axis)

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid bubble settings: %w", err)
	}
	return s, nil
}

// normalizeAxis 把 "null"、"none" 等写法统一为 AxisNone
func normalizeAxis(axis string) string {
	a := strings.ToLower(strings.TrimSpace(axis))
	switch a {
	case "null", "none", "~":
		return AxisNone
	}
	return a
}

// parseAttributeScalar 将属性值按 YAML 标量解析，失败时返回原始字符串
func parseAttributeScalar(raw string) interface{} {
	var v interface{}
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	if v == nil && strings.TrimSpace(raw) != "" && !isNullLiteral(raw) {
		return raw
	}
	return v
}

func isNullLiteral(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "null", "Null", "NULL", "~":
		return true
	}
	return false
}

func lookupAttribute(attrs map[string]string, key string) (string, bool) {
	if attrs == nil {
		return "", false
	}
	raw, ok := attrs[AttributePrefix+key]
	return raw, ok
}

func resolveFloat(dst *float64, opt *float64, attrs map[string]string, key string) {
	if opt != nil {
		*dst = *opt
		return
	}
	raw, ok := lookupAttribute(attrs, key)
	if !ok {
		return
	}
	switch v := parseAttributeScalar(raw).(type) {
	case int:
		*dst = float64(v)
	case float64:
		*dst = v
	default:
		log.Printf("[BubbleConfig] Warning: attribute %s%s=%q is not a number (using %v)", AttributePrefix, key, raw, *dst)
	}
}

func resolveBool(dst *bool, opt *bool, attrs map[string]string, key string) {
	if opt != nil {
		*dst = *opt
		return
	}
	raw, ok := lookupAttribute(attrs, key)
	if !ok {
		return
	}
	switch v := parseAttributeScalar(raw).(type) {
	case bool:
		*dst = v
	default:
		log.Printf("[BubbleConfig] Warning: attribute %s%s=%q is not a boolean (using %v)", AttributePrefix, key, raw, *dst)
	}
}

func resolveString(dst *string, opt *string, attrs map[string]string, key string) {
	if opt != nil {
		*dst = *opt
		return
	}
	raw, ok := lookupAttribute(attrs, key)
	if !ok {
		return
	}
	switch v := parseAttributeScalar(raw).(type) {
	case string:
		*dst = v
	case nil:
		*dst = ""
	default:
		*dst = raw
	}
}
