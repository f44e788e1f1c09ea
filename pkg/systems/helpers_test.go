package systems

import (
	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
)

// newTestNode 创建测试用 UI 节点
func newTestNode(em *ecs.EntityManager, parent ecs.EntityID, x, y, w, h float64, attrs map[string]string) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.UINodeComponent{
		Parent:     parent,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Attributes: attrs,
	})
	return id
}
