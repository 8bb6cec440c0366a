package systems

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/ecs"
)

// FloatSystem 散点模式的漂浮扰动
//
// 每个实体围绕自己的基准点做独立的李萨如式轨道运动：
//
//	angle = phase + τ·speed
//	offset = (cos(angle), sin(angle·0.9)) · radius
//
// 偏移叠加在补间后的插值目标上，并按缓动进度加权：
// 过渡开始时权重为 0（插值目标连续），过渡结束后插值目标即 base + offset。
// 散点布局因此永远不会真正静止。
type FloatSystem struct {
	em *ecs.EntityManager
}

// NewFloatSystem 创建漂浮系统
func NewFloatSystem(em *ecs.EntityManager) *FloatSystem {
	return &FloatSystem{em: em}
}

// Randomize 为每个实体抽取漂浮参数（相位、半径、角速度）
// 只在人口创建时调用一次
func (fs *FloatSystem) Randomize(rng *rand.Rand, cfg config.FloatConfig) {
	people := fs.em.People()
	for i := range people {
		p := &people[i]
		p.Float.Phase = rng.Float64() * math.Pi * 2
		p.Float.Radius = cfg.RadiusMin + rng.Float64()*(cfg.RadiusMax-cfg.RadiusMin)
		p.Float.Speed = cfg.SpeedMin + rng.Float64()*(cfg.SpeedMax-cfg.SpeedMin)
	}
}

// Apply 在插值目标上叠加漂浮偏移
//
// 必须在 TweenSystem.Advance 之后调用。
//
// 参数:
//   - now: 帧时间戳（毫秒）
//   - weight: 偏移权重，通常为当前的缓动进度，范围 [0, 1]
func (fs *FloatSystem) Apply(now, weight float64) {
	tau := now / config.FloatTimeScale
	people := fs.em.People()
	for i := range people {
		p := &people[i]
		ox, oy := Orbit(p.Float.Phase, p.Float.Speed, p.Float.Radius, tau)
		p.Tween.TX += ox * weight
		p.Tween.TY += oy * weight
	}
}

// Orbit 返回时刻 tau（秒）的漂浮偏移
func Orbit(phase, speed, radius, tau float64) (ox, oy float64) {
	angle := phase + tau*speed
	return math.Cos(angle) * radius, math.Sin(angle*config.FloatYFrequencyRatio) * radius
}
