package bubble

import (
	"fmt"

	"github.com/decker502/neonbubble/pkg/ecs"
)

// InvalidTargetError 构造目标不是有效的 UI 节点（实体不存在或缺少 UINodeComponent）
type InvalidTargetError struct {
	Entity ecs.EntityID
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("can't initialize bubble because entity %d is not a UI node", e.Entity)
}

// MissingHandleError 容器内找不到带 data-handle 属性的手柄节点
type MissingHandleError struct {
	Entity    ecs.EntityID
	Attribute string
}

func (e *MissingHandleError) Error() string {
	return fmt.Sprintf("can't initialize bubble on entity %d: no descendant with attribute %q", e.Entity, e.Attribute)
}
