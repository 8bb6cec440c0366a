package systems

import (
	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/ecs"
	"github.com/decker502/crowdflow/pkg/utils"
)

// BoundsSystem 帧末边界限制
// 防止碰撞修正把靠近边缘的实体推出画布
type BoundsSystem struct {
	em    *ecs.EntityManager
	inset config.BoundsConfig
}

// NewBoundsSystem 创建边界系统
func NewBoundsSystem(em *ecs.EntityManager, inset config.BoundsConfig) *BoundsSystem {
	return &BoundsSystem{em: em, inset: inset}
}

// Clamp 把所有实体位置限制在视口内缩区间内，速度不变
func (bs *BoundsSystem) Clamp(vp components.ViewportComponent) {
	minX, maxX, minY, maxY := bs.Limits(vp)
	people := bs.em.People()
	for i := range people {
		p := &people[i]
		p.Position.X = utils.Clamp(p.Position.X, minX, maxX)
		p.Position.Y = utils.Clamp(p.Position.Y, minY, maxY)
	}
}

// Limits 返回当前视口下的内缩区间
func (bs *BoundsSystem) Limits(vp components.ViewportComponent) (minX, maxX, minY, maxY float64) {
	return vp.Inset(bs.inset.Left, bs.inset.Right, bs.inset.Top, bs.inset.Bottom)
}
