package scenes

import (
	"github.com/decker502/neonbubble/pkg/game"
)

// Scene is the scene contract driven by game.SceneManager.
type Scene = game.Scene

// BubbleScene 同时支持退出保存与切换时释放
var (
	_ Scene           = (*BubbleScene)(nil)
	_ game.Saveable   = (*BubbleScene)(nil)
	_ game.Disposable = (*BubbleScene)(nil)
)
