package components

import "github.com/decker502/neonbubble/pkg/ecs"

// UINodeComponent 标记实体为 UI 节点（相当于 DOM 元素）
//
// 坐标系：
//   - X/Y 是节点布局槽左上角相对父节点盒子左上角的偏移
//   - Parent 为 0 表示根节点，此时 X/Y 即页面坐标
//   - Width/Height 是节点的固有尺寸，内联样式可覆盖（见 StyleComponent）
type UINodeComponent struct {
	// Parent 父节点实体（0 = 无父节点）
	Parent ecs.EntityID
	// X, Y 布局槽左上角（相对父节点）
	X, Y float64
	// Width, Height 固有尺寸（像素）
	Width, Height float64
	// Attributes 声明式属性，如 "data-nb"、"data-handle"、"data-nb-reverse"
	Attributes map[string]string
}

// HasAttribute 检查节点是否声明了指定属性（值可以为空字符串）
func (n *UINodeComponent) HasAttribute(name string) bool {
	if n == nil || n.Attributes == nil {
		return false
	}
	_, ok := n.Attributes[name]
	return ok
}
