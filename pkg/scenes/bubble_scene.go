package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/decker502/neonbubble/pkg/bubble"
	"github.com/decker502/neonbubble/pkg/components"
	"github.com/decker502/neonbubble/pkg/config"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/embedded"
	"github.com/decker502/neonbubble/pkg/game"
	"github.com/decker502/neonbubble/pkg/systems"
	"github.com/decker502/neonbubble/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultScenePath 默认场景文件（嵌入资源）
const DefaultScenePath = "data/scenes/default.yaml"

var backgroundColor = color.RGBA{R: 12, G: 10, B: 24, A: 255}

// command 场景快捷键命令
type command int

const (
	cmdToggleReverse command = iota
	cmdAxisX
	cmdAxisY
	cmdAxisNone
	cmdToggleReset
	cmdSave
	cmdDestroyAll
	cmdRebind
)

// keyBindings 快捷键映射
var keyBindings = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyR, cmdToggleReverse},
	{ebiten.KeyX, cmdAxisX},
	{ebiten.KeyY, cmdAxisY},
	{ebiten.KeyN, cmdAxisNone},
	{ebiten.KeyT, cmdToggleReset},
	{ebiten.KeyS, cmdSave},
	{ebiten.KeyEscape, cmdDestroyAll},
	{ebiten.KeyB, cmdRebind},
}

// bubbleNode 场景中的一个气泡容器
type bubbleNode struct {
	spec       config.BubbleNodeSpec
	container  ecs.EntityID
	handle     ecs.EntityID
	lastChange bubble.MotionChanged
	hasChange  bool
}

// BubbleScene 气泡效果演示场景
//
// 根据场景配置创建容器/手柄节点，绑定所有 data-nb 容器，
// 每帧按 指针 → 帧回调 → 关键帧动画 → 过渡 → 定时器 的顺序推进宿主系统。
type BubbleScene struct {
	config        *config.SceneConfig
	entityManager *ecs.EntityManager
	host          bubble.Host
	registry      *bubble.Registry
	settings      *game.SettingsManager

	pointerSystem    *systems.PointerSystem
	transitionSystem *systems.TransitionSystem
	renderSystem     *systems.RenderSystem
	tracker          *utils.PointerTracker

	nodes     []*bubbleNode
	listeners []systems.ListenerID
	bindErr   error
	message   string
}

// LoadBubbleScene 加载场景文件并创建场景
// 路径优先在嵌入资源中查找，找不到时从磁盘读取
func LoadBubbleScene(path string, settings *game.SettingsManager) (*BubbleScene, error) {
	cfg, err := loadSceneConfig(path)
	if err != nil {
		return nil, err
	}
	return NewBubbleScene(cfg, settings)
}

func loadSceneConfig(path string) (*config.SceneConfig, error) {
	if embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded scene %s: %w", path, err)
		}
		return config.ParseSceneConfig(data)
	}
	return config.LoadSceneConfig(path)
}

// NewBubbleScene 根据场景配置创建场景
//
// 参数：
//   - cfg: 场景配置
//   - settings: 用户覆盖设置，可为 nil（不使用覆盖）
//
// 返回：
//   - *BubbleScene: 场景实例（部分容器绑定失败时仍然返回，错误显示在画面上）
//   - error: 配置为空时返回错误
func NewBubbleScene(cfg *config.SceneConfig, settings *game.SettingsManager) (*BubbleScene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene config is nil")
	}
	if settings == nil {
		settings, _ = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	host := bubble.NewHost(em)
	pointer := systems.NewPointerSystem(em, host.Events)
	pointer.SetScroll(cfg.Scroll.X, cfg.Scroll.Y)

	s := &BubbleScene{
		config:           cfg,
		entityManager:    em,
		host:             host,
		registry:         bubble.NewRegistry(host),
		settings:         settings,
		pointerSystem:    pointer,
		transitionSystem: systems.NewTransitionSystem(em),
		renderSystem:     systems.NewRenderSystem(em, pointer),
		tracker:          utils.NewPointerTracker(),
	}

	s.buildNodes()
	s.bind()

	log.Printf("[BubbleScene] Scene created: %d nodes, %d bound", len(s.nodes), s.registry.Len())
	return s, nil
}

// buildNodes 为每个配置项创建容器与手柄实体，并监听容器上的 MotionChanged
func (s *BubbleScene) buildNodes() {
	for _, spec := range s.config.Bubbles {
		attrs := make(map[string]string, len(spec.Attributes))
		for k, v := range spec.Attributes {
			attrs[k] = v
		}

		container := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, container, &components.UINodeComponent{
			X:          spec.X,
			Y:          spec.Y,
			Width:      spec.Width,
			Height:     spec.Height,
			Attributes: attrs,
		})

		handleAttrs := map[string]string{systems.HandleAttribute: ""}
		if spec.Handle.Missing {
			handleAttrs = map[string]string{}
		}
		handle := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, handle, &components.UINodeComponent{
			Parent:     container,
			X:          spec.Handle.X,
			Y:          spec.Handle.Y,
			Width:      spec.Handle.Width,
			Height:     spec.Handle.Height,
			Attributes: handleAttrs,
		})

		node := &bubbleNode{spec: spec, container: container, handle: handle}
		s.nodes = append(s.nodes, node)
		s.listeners = append(s.listeners, s.host.Events.AddEventListener(container, bubble.EventMotionChanged, func(ev systems.Event) {
			if change, ok := ev.Detail.(bubble.MotionChanged); ok {
				node.lastChange = change
				node.hasChange = true
			}
		}))
	}
}

// bind 绑定所有容器
// 带显式选项的容器先单独绑定，其余容器由 BindAll 自动发现
func (s *BubbleScene) bind() {
	var errs []error
	for _, node := range s.nodes {
		if node.spec.Options.IsEmpty() {
			continue
		}
		if _, err := s.registry.Bind(node.container, s.settings.Apply(node.spec.Options)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", node.spec.Name, err))
		}
	}

	if _, err := s.registry.BindAll(bubble.BindAttribute, s.settings.Overrides()); err != nil {
		errs = append(errs, err)
	}

	s.bindErr = errors.Join(errs...)
	if s.bindErr != nil {
		log.Printf("[BubbleScene] Warning: %v", s.bindErr)
	}
}

// rebind 销毁所有实例后按当前设置重新绑定
func (s *BubbleScene) rebind() {
	s.registry.DestroyAll()
	for _, node := range s.nodes {
		node.hasChange = false
	}
	s.bind()
}

// effectiveSettings 返回当前生效的设置（取第一个已绑定实例，否则按覆盖设置计算）
func (s *BubbleScene) effectiveSettings() config.BubbleSettings {
	for _, element := range s.registry.Elements() {
		if b, ok := s.registry.Get(element); ok {
			return b.Settings()
		}
	}
	settings, err := config.ResolveBubbleSettings(s.settings.Overrides(), nil)
	if err != nil {
		return config.DefaultBubbleSettings()
	}
	return settings
}

// apply 执行一条快捷键命令
func (s *BubbleScene) apply(cmd command) {
	current := s.effectiveSettings()

	switch cmd {
	case cmdToggleReverse:
		s.settings.ToggleReverse(current.Reverse)
		s.message = fmt.Sprintf("reverse = %v", !current.Reverse)
	case cmdAxisX, cmdAxisY, cmdAxisNone:
		axis := map[command]string{cmdAxisX: config.AxisX, cmdAxisY: config.AxisY, cmdAxisNone: config.AxisNone}[cmd]
		if err := s.settings.SetAxis(axis); err != nil {
			s.message = err.Error()
			return
		}
		s.message = fmt.Sprintf("axis = %q", axis)
	case cmdToggleReset:
		s.settings.ToggleReset(current.Reset)
		s.message = fmt.Sprintf("reset = %v", !current.Reset)
	case cmdSave:
		if err := s.settings.Save(); err != nil {
			s.message = fmt.Sprintf("save failed: %v", err)
		} else {
			s.message = "settings saved"
		}
		return
	case cmdDestroyAll:
		s.registry.DestroyAll()
		s.message = "all bubbles destroyed (B to rebind)"
		return
	case cmdRebind:
		s.message = "rebound"
	}

	// 设置变化通过重新绑定生效
	s.rebind()
}

// Update 读取输入并推进一帧
func (s *BubbleScene) Update(deltaTime float64) {
	for _, kb := range keyBindings {
		if inpututil.IsKeyJustPressed(kb.key) {
			s.apply(kb.cmd)
		}
	}

	p := s.tracker.Update(s.config.Width, s.config.Height)
	s.step(systems.PointerInput{X: float64(p.X), Y: float64(p.Y), Present: p.Present}, deltaTime)
}

// step 按宿主顺序推进一帧
func (s *BubbleScene) step(input systems.PointerInput, deltaTime float64) {
	s.pointerSystem.Update(input)
	s.host.Frames.Flush()
	s.host.Animations.Update(deltaTime)
	s.transitionSystem.Update(deltaTime)
	s.host.Timers.Update(deltaTime)
}

// Draw 绘制节点、角度指示线和状态文本
func (s *BubbleScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)

	scrollX, scrollY := s.pointerSystem.Scroll()
	help := "R reverse  X/Y/N axis  T reset  S save  Esc destroy  B rebind  F5 reload"
	if utils.IsMobile() {
		help = "drag across a handle"
	}
	lines := []string{
		help,
		fmt.Sprintf("settings: %s", formatSettings(s.effectiveSettings())),
	}

	for _, node := range s.nodes {
		b, bound := s.registry.Get(node.container)
		state := "unbound"
		if bound {
			state = b.State().String()
		}

		line := fmt.Sprintf("%-10s %-17s", node.spec.Name, state)
		if node.hasChange {
			line += fmt.Sprintf(" translate(%s, %s) angle %.1f", node.lastChange.TranslateX, node.lastChange.TranslateY, node.lastChange.Angle)
		}
		lines = append(lines, line)

		if bound && node.hasChange && b.State() == bubble.StateHovering {
			if g, ok := b.Geometry(); ok {
				systems.DrawAngleMarker(screen, g.CenterX-scrollX, g.CenterY-scrollY, node.lastChange.Angle, g.Width/2)
			}
		}
	}

	if s.bindErr != nil {
		lines = append(lines, "bind errors: "+strings.ReplaceAll(s.bindErr.Error(), "\n", "; "))
	}
	if s.message != "" {
		lines = append(lines, s.message)
	}

	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)
}

// Size 返回场景的逻辑画面尺寸
func (s *BubbleScene) Size() (int, int) {
	return s.config.Width, s.config.Height
}

// SaveOnExit 退出时保存覆盖设置
func (s *BubbleScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[BubbleScene] Warning: failed to save settings on exit: %v", err)
		return false
	}
	return true
}

// Dispose 销毁所有实例、移除场景自己的监听器并删除节点实体
func (s *BubbleScene) Dispose() {
	s.registry.DestroyAll()
	for _, id := range s.listeners {
		s.host.Events.RemoveEventListener(id)
	}
	s.listeners = nil

	for _, node := range s.nodes {
		s.entityManager.DestroyEntity(node.handle)
		s.entityManager.DestroyEntity(node.container)
	}
	s.entityManager.RemoveMarkedEntities()
	log.Printf("[BubbleScene] Scene disposed")
}

func formatSettings(st config.BubbleSettings) string {
	axis := st.Axis
	if axis == config.AxisNone {
		axis = "none"
	}
	return fmt.Sprintf("expansion=%g offsetMax=%g duration=%gms easing=%s reverse=%v axis=%s reset=%v",
		st.Expansion, st.OffsetMax, st.Duration, st.Easing, st.Reverse, axis, st.Reset)
}
