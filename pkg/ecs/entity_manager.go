// Package ecs 持有人群实体的唯一集合
//
// 人口在启动时一次性创建，整个进程生命周期内不再增删；
// 各系统通过 EntityManager 遍历并原地修改实体字段，但不拥有任何子集。
package ecs

import (
	"image/color"

	"github.com/decker502/crowdflow/pkg/components"
)

// EntityID 是实体在全局顺序中的下标
// 碰撞求解器依赖这个顺序来避免重复处理同一对实体
type EntityID int

// EntityManager 管理所有人群实体
type EntityManager struct {
	people []components.PersonComponent

	// 组标签 -> 成员下标（按全局顺序），只是索引视图，不持有实体
	groupIndex map[string][]EntityID
	// 组标签的出现顺序
	groupOrder []string
}

// NewEntityManager 创建一个新的 EntityManager 实例
//
// 参数:
//   - capacity: 预期人口规模，用于预分配
func NewEntityManager(capacity int) *EntityManager {
	if capacity < 0 {
		capacity = 0
	}
	return &EntityManager{
		people:     make([]components.PersonComponent, 0, capacity),
		groupIndex: make(map[string][]EntityID),
	}
}

// CreateEntity 创建新实体并返回其 ID
// 组标签和颜色在创建后不可变
func (em *EntityManager) CreateEntity(group string, clr color.RGBA) EntityID {
	id := EntityID(len(em.people))
	em.people = append(em.people, components.PersonComponent{
		Group: group,
		Color: clr,
	})
	em.RegisterGroup(group)
	em.groupIndex[group] = append(em.groupIndex[group], id)
	return id
}

// RegisterGroup 登记组标签的排列位置，已登记的组不受影响
// 人数为 0 的组也要登记，布局时仍为它保留格子
func (em *EntityManager) RegisterGroup(group string) {
	if _, seen := em.groupIndex[group]; seen {
		return
	}
	em.groupIndex[group] = nil
	em.groupOrder = append(em.groupOrder, group)
}

// Len 返回人口规模
func (em *EntityManager) Len() int {
	return len(em.people)
}

// Get 返回指定实体的指针，ID 越界时返回 nil
func (em *EntityManager) Get(id EntityID) *components.PersonComponent {
	if id < 0 || int(id) >= len(em.people) {
		return nil
	}
	return &em.people[id]
}

// People 返回底层实体切片
// 调用者可以修改元素字段，但不应 append 或保存重新切片后的结果
func (em *EntityManager) People() []components.PersonComponent {
	return em.people
}

// Groups 返回组标签，顺序为首次登记的顺序（包括没有成员的组）
func (em *EntityManager) Groups() []string {
	return em.groupOrder
}

// GroupMembers 返回某组成员的 ID（全局顺序），未知组或空组返回 nil
func (em *EntityManager) GroupMembers(group string) []EntityID {
	return em.groupIndex[group]
}

// ForEach 按全局顺序遍历所有实体
func (em *EntityManager) ForEach(fn func(id EntityID, p *components.PersonComponent)) {
	for i := range em.people {
		fn(EntityID(i), &em.people[i])
	}
}
