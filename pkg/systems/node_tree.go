package systems

import (
	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
)

// Rect 轴对齐矩形
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 检查点是否在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// CenterX 矩形中心 X
func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

// CenterY 矩形中心 Y
func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// IsUINode 检查实体是否是有效的 UI 节点
func IsUINode(em *ecs.EntityManager, id ecs.EntityID) bool {
	if id == 0 || !em.EntityExists(id) {
		return false
	}
	return ecs.HasComponent[*components.UINodeComponent](em, id)
}

// Children 返回节点的直接子节点（按创建顺序）
func Children(em *ecs.EntityManager, parent ecs.EntityID) []ecs.EntityID {
	children := make([]ecs.EntityID, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.UINodeComponent](em) {
		node, _ := ecs.GetComponent[*components.UINodeComponent](em, id)
		if node.Parent == parent && id != parent {
			children = append(children, id)
		}
	}
	return children
}

// QuerySelector 深度优先查找 root 的第一个带有 attr 属性的后代（不含 root 自身）
// 相当于 root.querySelector("[attr]")，未找到返回 0
func QuerySelector(em *ecs.EntityManager, root ecs.EntityID, attr string) ecs.EntityID {
	matches := QuerySelectorAll(em, root, attr)
	if len(matches) == 0 {
		return 0
	}
	return matches[0]
}

// QuerySelectorAll 按文档顺序返回 root 的所有带有 attr 属性的后代
// root 为 0 时搜索所有根节点及其后代
func QuerySelectorAll(em *ecs.EntityManager, root ecs.EntityID, attr string) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)
	visited := make(map[ecs.EntityID]bool)

	var walk func(parent ecs.EntityID)
	walk = func(parent ecs.EntityID) {
		for _, child := range Children(em, parent) {
			if visited[child] {
				continue // 防御错误的父子环
			}
			visited[child] = true

			node, _ := ecs.GetComponent[*components.UINodeComponent](em, child)
			if node.HasAttribute(attr) {
				result = append(result, child)
			}
			walk(child)
		}
	}
	walk(root)

	return result
}

// IsDescendant 检查 id 是否是 ancestor 的后代
func IsDescendant(em *ecs.EntityManager, id, ancestor ecs.EntityID) bool {
	seen := make(map[ecs.EntityID]bool)
	for id != 0 && !seen[id] {
		seen[id] = true
		node, ok := ecs.GetComponent[*components.UINodeComponent](em, id)
		if !ok {
			return false
		}
		if node.Parent == ancestor {
			return true
		}
		id = node.Parent
	}
	return false
}

// BoxSize 返回节点当前的盒子尺寸（内联样式覆盖优先）
func BoxSize(em *ecs.EntityManager, id ecs.EntityID) (width, height float64) {
	node, ok := ecs.GetComponent[*components.UINodeComponent](em, id)
	if !ok {
		return 0, 0
	}
	width, height = node.Width, node.Height
	if style, ok := ecs.GetComponent[*components.StyleComponent](em, id); ok && style.HasSize {
		width, height = style.Width, style.Height
	}
	return width, height
}

// PageRect 计算节点盒子在页面坐标系中的矩形（相当于 getBoundingClientRect + 滚动偏移）
//
// 计算包含：
//   - 所有祖先节点的位置
//   - 节点自身的外边距
//   - 节点自身及祖先当前显示的平移变换（RenderedX/Y）
func PageRect(em *ecs.EntityManager, id ecs.EntityID) (Rect, bool) {
	return pageRect(em, id, make(map[ecs.EntityID]bool))
}

func pageRect(em *ecs.EntityManager, id ecs.EntityID, seen map[ecs.EntityID]bool) (Rect, bool) {
	node, ok := ecs.GetComponent[*components.UINodeComponent](em, id)
	if !ok || seen[id] {
		return Rect{}, false
	}
	seen[id] = true

	originX, originY := 0.0, 0.0
	if node.Parent != 0 {
		parent, ok := pageRect(em, node.Parent, seen)
		if !ok {
			return Rect{}, false
		}
		originX, originY = parent.X, parent.Y
	}

	width, height := BoxSize(em, id)
	x := originX + node.X
	y := originY + node.Y

	if style, ok := ecs.GetComponent[*components.StyleComponent](em, id); ok {
		if style.HasMargin {
			x += style.MarginX
			y += style.MarginY
		}
		x += style.RenderedX
		y += style.RenderedY
	}

	return Rect{X: x, Y: y, Width: width, Height: height}, true
}

// ClientRect 计算节点在窗口（视口）坐标系中的矩形
func ClientRect(em *ecs.EntityManager, id ecs.EntityID, scrollX, scrollY float64) (Rect, bool) {
	r, ok := PageRect(em, id)
	if !ok {
		return Rect{}, false
	}
	r.X -= scrollX
	r.Y -= scrollY
	return r, true
}
