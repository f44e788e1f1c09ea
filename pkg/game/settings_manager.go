package game

import (
	"fmt"
	"log"

	"github.com/decker502/neonbubble/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SettingsManager 设置管理器
// 负责用户对气泡效果的覆盖设置（BubbleOptions）的加载、保存和内存管理。
// 覆盖设置优先于场景文件中的属性，在重新绑定时生效。
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	overrides    config.BubbleOptions
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "bubble"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方检查（加载失败不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用空覆盖
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using scene defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载覆盖设置
//
// 如果 gdataManager 为 nil 或文件不存在，覆盖设置为空
//
// 返回：
//   - error: 如果读取、反序列化或校验失败返回错误
func (sm *SettingsManager) Load() error {
	sm.overrides = config.BubbleOptions{}

	// 降级模式：无法持久化
	if sm.gdataManager == nil {
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded config.BubbleOptions
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	// 非法的存档整体丢弃，退回空覆盖
	if _, err := config.ResolveBubbleSettings(loaded, nil); err != nil {
		return fmt.Errorf("saved settings are invalid: %w", err)
	}

	sm.overrides = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存覆盖设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.overrides)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Overrides 返回当前的覆盖设置
func (sm *SettingsManager) Overrides() config.BubbleOptions {
	return sm.overrides
}

// Apply 把覆盖设置合并到场景中节点自带的选项之上
func (sm *SettingsManager) Apply(base config.BubbleOptions) config.BubbleOptions {
	return sm.overrides.Merge(base)
}

// ToggleReverse 切换 reverse
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - current: 当前生效的值（覆盖未设置时以它为准取反）
func (sm *SettingsManager) ToggleReverse(current bool) {
	v := !current
	sm.overrides.Reverse = &v
}

// ToggleReset 切换离开时是否归零
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) ToggleReset(current bool) {
	v := !current
	sm.overrides.Reset = &v
}

// SetAxis 设置轴锁定（config.AxisNone / AxisX / AxisY）
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAxis(axis string) error {
	switch axis {
	case config.AxisNone, config.AxisX, config.AxisY:
	default:
		return fmt.Errorf("unknown axis %q", axis)
	}
	sm.overrides.Axis = &axis
	return nil
}

// Clear 清除所有覆盖设置
func (sm *SettingsManager) Clear() {
	sm.overrides = config.BubbleOptions{}
}
