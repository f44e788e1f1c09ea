package components

// PointerHoverComponent 记录节点的指针悬停状态
// 由 PointerSystem 维护，用于在帧之间判断 enter/leave
type PointerHoverComponent struct {
	// IsHovered 指针当前是否位于节点盒子内
	IsHovered bool
}
