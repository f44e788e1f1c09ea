package systems

import (
	"image/color"
	"math"

	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HandleAttribute 标记手柄节点的属性名
const HandleAttribute = "data-handle"

// 节点绘制颜色
var (
	containerColor   = color.RGBA{R: 60, G: 60, B: 90, A: 255}
	handleColor      = color.RGBA{R: 0, G: 230, B: 255, A: 255}
	handleHoverColor = color.RGBA{R: 255, G: 64, B: 200, A: 255}
)

// RenderSystem 节点渲染系统
// 容器绘制为描边矩形，手柄绘制为填充矩形（悬停时高亮）
type RenderSystem struct {
	entityManager *ecs.EntityManager
	pointer       *PointerSystem
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, pointer *PointerSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Draw 按创建顺序绘制所有 UI 节点（窗口坐标）
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	scrollX, scrollY := s.pointer.Scroll()

	for _, id := range ecs.GetEntitiesWith1[*components.UINodeComponent](s.entityManager) {
		node, _ := ecs.GetComponent[*components.UINodeComponent](s.entityManager, id)
		rect, ok := ClientRect(s.entityManager, id, scrollX, scrollY)
		if !ok || rect.Width <= 0 || rect.Height <= 0 {
			continue
		}

		if !node.HasAttribute(HandleAttribute) {
			vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), 1, containerColor, false)
			continue
		}

		clr := handleColor
		if hover, ok := ecs.GetComponent[*components.PointerHoverComponent](s.entityManager, id); ok && hover.IsHovered {
			clr = handleHoverColor
		}
		vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), clr, true)
	}
}

// DrawAngleMarker 从 (cx, cy) 沿角度方向绘制一条指示线
// 角度以正上方为 0°，顺时针增加
func DrawAngleMarker(screen *ebiten.Image, cx, cy, angleDeg, length float64) {
	rad := angleDeg * math.Pi / 180
	x2 := cx + math.Sin(rad)*length
	y2 := cy - math.Cos(rad)*length
	vector.StrokeLine(screen, float32(cx), float32(cy), float32(x2), float32(y2), 2, handleHoverColor, true)
}
