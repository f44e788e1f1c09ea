package bubble

import (
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/systems"
)

// Geometry 手柄几何信息（页面坐标），在 pointer-enter 时缓存
type Geometry struct {
	CenterX, CenterY float64
	Width, Height    float64
}

// captureGeometry 读取手柄当前的页面矩形并更新缓存
//
// 中心点每次进入都重新计算；宽高只在未缓存（为 0）时记录，
// 之后的进入沿用缓存值，直到显式调用 InvalidateGeometry。
// 元素尺寸变化不会自动使缓存失效。
func captureGeometry(em *ecs.EntityManager, handle ecs.EntityID, cached Geometry) (Geometry, bool) {
	rect, ok := systems.PageRect(em, handle)
	if !ok {
		return cached, false
	}

	g := cached
	g.CenterX = rect.CenterX()
	g.CenterY = rect.CenterY()
	if g.Width == 0 {
		g.Width = rect.Width
	}
	if g.Height == 0 {
		g.Height = rect.Height
	}
	return g, true
}
