package bubble

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/decker502/neonbubble/pkg/config"
	"github.com/decker502/neonbubble/pkg/ecs"
	"github.com/decker502/neonbubble/pkg/systems"
)

// BindAttribute 参与自动绑定的容器属性
const BindAttribute = "data-nb"

// Registry 容器实体到气泡实例的映射
// 实例不写入实体本身，关联关系只保存在这里
type Registry struct {
	host      Host
	instances map[ecs.EntityID]*Bubble
}

// NewRegistry 创建绑定注册表
func NewRegistry(host Host) *Registry {
	return &Registry{
		host:      host,
		instances: make(map[ecs.EntityID]*Bubble),
	}
}

// Host 返回注册表使用的宿主系统
func (r *Registry) Host() Host {
	return r.host
}

// Bind 在容器上创建气泡效果；已绑定的容器直接返回现有实例
func (r *Registry) Bind(element ecs.EntityID, opts config.BubbleOptions) (*Bubble, error) {
	if existing, ok := r.instances[element]; ok {
		return existing, nil
	}

	b, err := New(r.host, element, opts)
	if err != nil {
		return nil, err
	}

	r.instances[element] = b
	b.onDestroy = func() {
		if r.instances[element] == b {
			delete(r.instances, element)
		}
	}
	return b, nil
}

// BindAll 绑定所有带有 attr 属性的节点（按文档顺序）
// 单个节点绑定失败不影响其他节点，所有错误合并后返回
func (r *Registry) BindAll(attr string, opts config.BubbleOptions) ([]*Bubble, error) {
	elements := systems.QuerySelectorAll(r.host.EntityManager, 0, attr)

	bound := make([]*Bubble, 0, len(elements))
	var errs []error
	for _, element := range elements {
		b, err := r.Bind(element, opts)
		if err != nil {
			log.Printf("[Registry] Warning: failed to bind entity %d: %v", element, err)
			errs = append(errs, fmt.Errorf("entity %d: %w", element, err))
			continue
		}
		bound = append(bound, b)
	}

	log.Printf("[Registry] Bound %d/%d elements with attribute %q", len(bound), len(elements), attr)
	return bound, errors.Join(errs...)
}

// Get 返回容器上的气泡实例
func (r *Registry) Get(element ecs.EntityID) (*Bubble, bool) {
	b, ok := r.instances[element]
	return b, ok
}

// Unbind 销毁容器上的气泡实例，返回是否存在
func (r *Registry) Unbind(element ecs.EntityID) bool {
	b, ok := r.instances[element]
	if !ok {
		return false
	}
	b.Destroy()
	return true
}

// DestroyAll 销毁所有实例
func (r *Registry) DestroyAll() {
	for _, element := range r.Elements() {
		r.Unbind(element)
	}
}

// Len 返回已绑定的实例数量
func (r *Registry) Len() int {
	return len(r.instances)
}

// Elements 返回所有已绑定的容器（按 ID 升序）
func (r *Registry) Elements() []ecs.EntityID {
	elements := make([]ecs.EntityID, 0, len(r.instances))
	for element := range r.instances {
		elements = append(elements, element)
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i] < elements[j] })
	return elements
}
