// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态（窗口坐标）
// 统一处理鼠标和触摸输入
type PointerState struct {
	X, Y int
	// Present 指针是否在画面内（触摸时为是否有活动的触摸）
	Present bool
	// IsTouch 是否来自触摸
	IsTouch bool
}

// PointerTracker 每帧读取一次指针状态
// 触摸优先；触摸抬起后指针视为离开画面（触摸设备没有悬停）
type PointerTracker struct {
	lastTouchX, lastTouchY int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Update 读取本帧的指针状态
//
// 参数：
//   - screenWidth, screenHeight: 逻辑画面尺寸，鼠标在范围外时视为不在画面内
func (pt *PointerTracker) Update(screenWidth, screenHeight int) PointerState {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		pt.lastTouchX, pt.lastTouchY = x, y
		return PointerState{X: x, Y: y, Present: true, IsTouch: true}
	}

	// 本帧刚抬起的触摸：停在最后位置但不再存在
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerState{X: pt.lastTouchX, Y: pt.lastTouchY, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:       x,
		Y:       y,
		Present: InsideScreen(x, y, screenWidth, screenHeight),
	}
}

// InsideScreen 判断窗口坐标是否在 [0, w) x [0, h) 内
func InsideScreen(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}
