package systems

import (
	"github.com/decker502/crowdflow/pkg/ecs"
	"github.com/decker502/crowdflow/pkg/utils"
)

// TweenSystem 补间调度器
//
// 布局切换时捕获每个实体当前的插值目标作为起点，
// 之后每帧按三次缓入缓出曲线把插值目标从起点推向布局目标 Next。
//
// 起点取的是插值目标 Tween.Target 而不是实体的真实位置：
// 过渡被打断时从正在进行中的插值值重新起步，轨迹不会跳变。
type TweenSystem struct {
	em       *ecs.EntityManager
	duration float64 // 过渡时长（毫秒）
	start    float64 // 本次过渡的开始时间戳
}

// NewTweenSystem 创建补间系统
//
// 参数:
//   - em: 实体管理器
//   - durationMs: 过渡时长，非正值时退化为立即完成
//   - now: 初始时间戳，未调用 Begin 前视为从此刻开始
func NewTweenSystem(em *ecs.EntityManager, durationMs, now float64) *TweenSystem {
	return &TweenSystem{
		em:       em,
		duration: durationMs,
		start:    now,
	}
}

// Begin 开始一次新的过渡
// 对每个实体把当前插值目标复制为起点，并记录开始时间
func (ts *TweenSystem) Begin(now float64) {
	ts.start = now
	people := ts.em.People()
	for i := range people {
		p := &people[i]
		p.Tween.SX = p.Tween.TX
		p.Tween.SY = p.Tween.TY
	}
}

// Progress 返回过渡的线性进度，范围 [0, 1]
func (ts *TweenSystem) Progress(now float64) float64 {
	if ts.duration <= 0 {
		return 1
	}
	return utils.Clamp((now-ts.start)/ts.duration, 0, 1)
}

// Eased 返回缓动后的进度
func (ts *TweenSystem) Eased(now float64) float64 {
	return utils.EaseInOutCubic(ts.Progress(now))
}

// Active 判断过渡是否仍在缓动窗口内
func (ts *TweenSystem) Active(now float64) bool {
	return ts.Progress(now) < 1
}

// StartedAt 返回本次过渡的开始时间戳
func (ts *TweenSystem) StartedAt() float64 {
	return ts.start
}

// Advance 推进补间，写入每个实体的插值目标
//
// 窗口结束后插值目标精确等于 Next（直接赋值，避免浮点插值误差）。
func (ts *TweenSystem) Advance(now float64) {
	t := ts.Progress(now)
	people := ts.em.People()

	if t >= 1 {
		for i := range people {
			p := &people[i]
			p.Tween.TX = p.Next.NX
			p.Tween.TY = p.Next.NY
		}
		return
	}

	e := utils.EaseInOutCubic(t)
	for i := range people {
		p := &people[i]
		p.Tween.TX = utils.Lerp(p.Tween.SX, p.Next.NX, e)
		p.Tween.TY = utils.Lerp(p.Tween.SY, p.Next.NY, e)
	}
}
