package systems

import "github.com/decker502/crowdflow/pkg/ecs"

// MotionSystem 弹簧-阻尼积分器
//
// 每帧：v = (v + (target - pos) * attraction) * damping; pos += v
// 在默认参数下表现为平滑减速而不是振荡。
// 无论是否处于过渡中都必须每帧运行，持续追踪当前的插值目标。
type MotionSystem struct {
	em         *ecs.EntityManager
	attraction float64
	damping    float64
}

// NewMotionSystem 创建运动积分系统
func NewMotionSystem(em *ecs.EntityManager, attraction, damping float64) *MotionSystem {
	return &MotionSystem{
		em:         em,
		attraction: attraction,
		damping:    damping,
	}
}

// Update 推进一帧，不分配内存
func (ms *MotionSystem) Update() {
	people := ms.em.People()
	for i := range people {
		p := &people[i]
		p.Velocity.VX = (p.Velocity.VX + (p.Tween.TX-p.Position.X)*ms.attraction) * ms.damping
		p.Velocity.VY = (p.Velocity.VY + (p.Tween.TY-p.Position.Y)*ms.attraction) * ms.damping
		p.Position.X += p.Velocity.VX
		p.Position.Y += p.Velocity.VY
	}
}
