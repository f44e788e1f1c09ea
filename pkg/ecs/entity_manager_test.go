package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testNodeComponent struct {
	X, Y          float64
	Width, Height float64
}

type testStyleComponent struct {
	TranslateX, TranslateY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if !em.EntityExists(id1) || !em.EntityExists(id2) {
		t.Error("Created entities should exist")
	}

	if em.EntityExists(0) {
		t.Error("Entity 0 is reserved and should never exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testNodeComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testNodeComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testNodeComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 向不存在的实体添加组件应被忽略
	em.AddComponent(42, &testNodeComponent{})
	AddComponent(em, 42, &testStyleComponent{})

	if em.EntityExists(42) {
		t.Error("AddComponent must not create entities implicitly")
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testStyleComponent{TranslateX: 15})

	style, ok := GetComponent[*testStyleComponent](em, id)
	if !ok {
		t.Fatal("GetComponent should find the style component")
	}
	if style.TranslateX != 15 {
		t.Errorf("TranslateX = %v, want 15", style.TranslateX)
	}

	// 泛型写入与反射读取使用同一个类型键
	if !em.HasComponent(id, reflect.TypeOf(&testStyleComponent{})) {
		t.Error("Generic AddComponent should be visible to reflect-based lookup")
	}

	if _, ok := GetComponent[*testNodeComponent](em, id); ok {
		t.Error("GetComponent should miss components that were never added")
	}

	RemoveComponent[*testStyleComponent](em, id)
	if HasComponent[*testStyleComponent](em, id) {
		t.Error("Component should be gone after RemoveComponent")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testNodeComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.EntityExists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.EntityExists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testNodeComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testStyleComponent{})
			ids = append(ids, id)
		}
	}

	got := GetEntitiesWith2[*testNodeComponent, *testStyleComponent](em)
	if len(got) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(got))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("Result not in creation order: got %v, want %v", got, ids)
		}
	}

	if n := len(GetEntitiesWith1[*testNodeComponent](em)); n != 20 {
		t.Errorf("Expected 20 node entities, got %d", n)
	}
}
