// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/neonbubble/pkg/game"
	"github.com/decker502/neonbubble/pkg/scenes"
	"github.com/decker502/neonbubble/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 默认逻辑画面尺寸（场景未声明尺寸时使用）
const (
	DefaultScreenWidth  = 800
	DefaultScreenHeight = 600
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ScenePath 场景文件路径，为空时使用嵌入的默认场景
	ScenePath string
	// AppName gdata 存储使用的应用名，为空时使用 "neonbubble"
	AppName string
}

// sizedScene 声明了逻辑画面尺寸的场景
type sizedScene interface {
	Size() (int, int)
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	verbose         bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appName := cfg.AppName
	if appName == "" {
		appName = "neonbubble"
	}

	settingsManager, err := game.NewSettingsManager(openStorage(appName))
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(path string) (game.Scene, error) {
		return scenes.LoadBubbleScene(path, settingsManager)
	})

	scenePath := cfg.ScenePath
	if scenePath == "" {
		scenePath = scenes.DefaultScenePath
	}
	if err := sceneManager.LoadScene(scenePath); err != nil {
		return nil, fmt.Errorf("场景加载失败: %w", err)
	}
	log.Printf("[App] Starting scene: %s", scenePath)

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// openStorage 打开 gdata 存储；失败时返回 nil（降级为仅内存设置）
func openStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	}

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	return m
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭：保存设置后退出
	if ebiten.IsWindowBeingClosed() {
		if !a.sceneManager.SaveOnExit() {
			log.Printf("[App] Warning: failed to save on exit")
		}
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// F5 重新加载场景文件
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.sceneManager.Reload(); err != nil {
			log.Printf("[App] Warning: reload failed: %v", err)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸（取当前场景声明的尺寸）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ScreenSize()
}

// ScreenSize 返回当前场景的逻辑画面尺寸
func (a *App) ScreenSize() (int, int) {
	if s, ok := a.sceneManager.GetCurrentScene().(sizedScene); ok {
		if w, h := s.Size(); w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultScreenWidth, DefaultScreenHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
