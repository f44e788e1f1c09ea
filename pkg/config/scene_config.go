package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneConfig 演示场景配置
// 描述页面滚动偏移以及若干气泡容器（每个容器包含一个手柄）
type SceneConfig struct {
	Width   int              `yaml:"width"`   // 逻辑画面宽度
	Height  int              `yaml:"height"`  // 逻辑画面高度
	Scroll  ScrollConfig     `yaml:"scroll"`  // 页面滚动偏移
	Bubbles []BubbleNodeSpec `yaml:"bubbles"` // 气泡容器列表
}

// ScrollConfig 页面滚动偏移（page = client + scroll）
type ScrollConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BubbleNodeSpec 单个气泡容器的布局与配置
type BubbleNodeSpec struct {
	Name       string            `yaml:"name"`
	X          float64           `yaml:"x"`
	Y          float64           `yaml:"y"`
	Width      float64           `yaml:"width"`
	Height     float64           `yaml:"height"`
	Attributes map[string]string `yaml:"attributes"` // 容器属性，data-nb 表示参与自动绑定
	Options    BubbleOptions     `yaml:"options"`    // 显式选项（优先级最高）
	Handle     HandleNodeSpec    `yaml:"handle"`
}

// HandleNodeSpec 手柄节点布局（坐标相对容器）
type HandleNodeSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Missing 为 true 时不创建手柄属性，用于演示 MissingHandleError
	Missing bool `yaml:"missing"`
}

// LoadSceneConfig 从 YAML 文件加载场景配置
func LoadSceneConfig(filePath string) (*SceneConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config file: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 从 YAML 数据解析场景配置
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var config SceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config YAML: %w", err)
	}

	if err := validateSceneConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return &config, nil
}

// validateSceneConfig 验证配置的有效性
func validateSceneConfig(config *SceneConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("scene size must be positive, got %dx%d", config.Width, config.Height)
	}

	if len(config.Bubbles) == 0 {
		return fmt.Errorf("bubbles cannot be empty")
	}

	names := make(map[string]bool, len(config.Bubbles))
	for i, b := range config.Bubbles {
		if b.Name == "" {
			return fmt.Errorf("bubble %d: name cannot be empty", i)
		}
		if names[b.Name] {
			return fmt.Errorf("bubble %q: duplicate name", b.Name)
		}
		names[b.Name] = true

		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("bubble %q: size must be positive", b.Name)
		}
		if b.Handle.Width < 0 || b.Handle.Height < 0 {
			return fmt.Errorf("bubble %q: handle size must be >= 0", b.Name)
		}
	}

	return nil
}
