// Package game 组织人群模拟的状态与每帧流程
//
// SimulationState 持有实体集合、视口和当前布局；FrameDriver 按固定顺序驱动各系统。
// 所有实体状态在每帧执行期间只由驱动循环访问，外部输入通过 EventQueue 在帧间生效。
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/ecs"
	"github.com/decker502/crowdflow/pkg/types"
)

// SimulationState 一个独立的模拟实例
// 不使用任何包级全局状态，测试中可以并行创建多个实例
type SimulationState struct {
	Entities *ecs.EntityManager
	Viewport components.ViewportComponent
	Layout   types.LayoutID
	Config   *config.SimulationConfig
	Rand     *rand.Rand
	Seed     uint64
}

// NewSimulationState 根据配置创建人口
//
// 每个实体的初始位置在视口内均匀随机，所有目标点与初始位置重合、速度为 0。
//
// 参数:
//   - cfg: 已通过验证的模拟配置
//   - vp: 初始视口
//
// 返回:
//   - *SimulationState: 模拟状态
//   - error: 配置中的颜色无法解析时返回错误
func NewSimulationState(cfg *config.SimulationConfig, vp components.ViewportComponent) (*SimulationState, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	em := ecs.NewEntityManager(cfg.Population())
	for _, g := range cfg.Groups {
		clr, err := config.ParseColor(g.Color)
		if err != nil {
			return nil, fmt.Errorf("group '%s': %w", g.Key, err)
		}
		em.RegisterGroup(g.Key)
		for i := 0; i < g.Count; i++ {
			em.CreateEntity(g.Key, clr)
		}
	}

	em.ForEach(func(_ ecs.EntityID, p *components.PersonComponent) {
		p.PlaceAt(rng.Float64()*vp.Width, rng.Float64()*vp.Height)
	})

	return &SimulationState{
		Entities: em,
		Viewport: vp,
		Layout:   types.LayoutScatter,
		Config:   cfg,
		Rand:     rng,
		Seed:     seed,
	}, nil
}
