package game

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/systems"
	"github.com/decker502/crowdflow/pkg/types"
)

// Phase 帧驱动的外部可见状态
// 两种状态走同一条每帧代码路径，区别只在于是否处于缓动窗口内
type Phase int

const (
	// PhaseIdle 已停留在当前布局（缓动窗口已结束）
	PhaseIdle Phase = iota
	// PhaseTransitioning 处于缓动窗口内
	PhaseTransitioning
)

// String 返回状态名
func (p Phase) String() string {
	if p == PhaseTransitioning {
		return "transitioning"
	}
	return "idle"
}

// FrameStats 单帧统计
type FrameStats struct {
	Frame     uint64
	Layout    types.LayoutID
	Phase     Phase
	Events    int
	Collision systems.CollisionStats
}

// FrameDriver 每帧流程编排
//
// 每帧顺序：
//  1. 取空外部事件队列（布局切换、视口变化）
//  2. 推进补间
//  3. 散点布局下叠加漂浮扰动
//  4. 弹簧积分
//  5. 碰撞分离
//  6. 边界限制
//
// 之后由外部渲染器读取 Snapshot。
type FrameDriver struct {
	state  *SimulationState
	events *EventQueue

	layout    *systems.LayoutSystem
	tween     *systems.TweenSystem
	motion    *systems.MotionSystem
	float     *systems.FloatSystem
	collision *systems.CollisionSystem
	bounds    *systems.BoundsSystem

	minDistance float64
	frame       uint64
	lastNow     float64

	logger *log.Logger
}

// NewFrameDriver 创建帧驱动，并以散点布局作为初始状态
//
// 参数:
//   - state: 模拟状态（实体、视口、随机源）
//   - now: 初始时间戳（毫秒）
func NewFrameDriver(state *SimulationState, now float64) *FrameDriver {
	cfg := state.Config
	em := state.Entities

	fd := &FrameDriver{
		state:       state,
		events:      NewEventQueue(DefaultEventQueueSize),
		layout:      systems.NewLayoutSystem(em, state.Rand),
		tween:       systems.NewTweenSystem(em, cfg.Tween.DurationMs, now),
		motion:      systems.NewMotionSystem(em, cfg.Motion.Attraction, cfg.Motion.Damping),
		float:       systems.NewFloatSystem(em),
		collision:   systems.NewCollisionSystem(em),
		bounds:      systems.NewBoundsSystem(em, cfg.Bounds),
		minDistance: cfg.Collision.MinDistance,
		lastNow:     now,
		logger:      log.Default().WithPrefix("FrameDriver"),
	}

	fd.float.Randomize(state.Rand, cfg.Float)
	fd.applyLayout(types.LayoutScatter, now)
	fd.logger.Info("simulation ready",
		"entities", em.Len(), "groups", len(em.Groups()),
		"width", state.Viewport.Width, "height", state.Viewport.Height, "seed", state.Seed)
	return fd
}

// State 返回模拟状态
func (fd *FrameDriver) State() *SimulationState {
	return fd.state
}

// Events 返回外部事件队列
func (fd *FrameDriver) Events() *EventQueue {
	return fd.events
}

// Layout 返回当前布局
func (fd *FrameDriver) Layout() types.LayoutID {
	return fd.state.Layout
}

// Label 返回当前布局的显示文本
func (fd *FrameDriver) Label() string {
	return fd.state.Layout.Label()
}

// Phase 返回时刻 now 的外部可见状态
func (fd *FrameDriver) Phase(now float64) Phase {
	if fd.tween.Active(now) {
		return PhaseTransitioning
	}
	return PhaseIdle
}

// Bounds 返回当前视口下实体位置的允许区间
func (fd *FrameDriver) Bounds() (minX, maxX, minY, maxY float64) {
	return fd.bounds.Limits(fd.state.Viewport)
}

// HandleStep 处理步骤观察器的事件
//
// 只有有限整数且在布局枚举范围内的步骤编号才会触发布局切换，
// 其余一律忽略，保持原布局。
//
// 返回:
//   - bool: 是否触发了布局切换
func (fd *FrameDriver) HandleStep(step, now float64) bool {
	layout, ok := types.LayoutFromStep(step)
	if !ok {
		fd.logger.Debug("ignored step", "step", step)
		return false
	}
	fd.SetLayout(layout, now)
	return true
}

// SetLayout 切换到指定布局并开始过渡
// 重复切换到同一布局也会重新计算目标点并重启计时（与视口变化的处理一致）
func (fd *FrameDriver) SetLayout(layout types.LayoutID, now float64) {
	if !layout.Valid() {
		return
	}
	from := fd.state.Layout
	fd.applyLayout(layout, now)
	fd.logger.Info("layout changed", "from", from, "to", layout, "label", layout.Label())
}

// Resize 更新视口并从头重新计算当前布局
// 进行中的过渡会以当前插值值为起点重新开始
func (fd *FrameDriver) Resize(width, height, density, now float64) {
	vp := components.NewViewport(width, height, density)
	if vp == fd.state.Viewport {
		return
	}
	fd.state.Viewport = vp
	fd.applyLayout(fd.state.Layout, now)
	fd.logger.Debug("viewport resized", "width", vp.Width, "height", vp.Height, "density", vp.PixelDensity)
}

// applyLayout 捕获补间起点、计算新目标点
func (fd *FrameDriver) applyLayout(layout types.LayoutID, now float64) {
	fd.state.Layout = layout
	fd.tween.Begin(now)
	fd.layout.Apply(layout, fd.state.Viewport)
}

// handleEvent 处理一个外部事件
func (fd *FrameDriver) handleEvent(ev Event, now float64) {
	switch ev.Kind {
	case EventStep:
		fd.HandleStep(ev.Step, now)
	case EventResize:
		fd.Resize(ev.Width, ev.Height, ev.Density, now)
	}
}

// Step 推进一帧
//
// 参数:
//   - now: 帧时间戳（毫秒），可以来自实时调度器，也可以是测试中的合成时间
//
// 返回:
//   - FrameStats: 本帧统计
func (fd *FrameDriver) Step(now float64) FrameStats {
	events := fd.events.Drain(func(ev Event) {
		fd.handleEvent(ev, now)
	})

	fd.tween.Advance(now)
	if fd.state.Layout == types.LayoutScatter {
		fd.float.Apply(now, fd.tween.Eased(now))
	}
	fd.motion.Update()
	collision := fd.collision.Resolve(fd.minDistance)
	fd.bounds.Clamp(fd.state.Viewport)

	fd.frame++
	fd.lastNow = now

	return FrameStats{
		Frame:     fd.frame,
		Layout:    fd.state.Layout,
		Phase:     fd.Phase(now),
		Events:    events,
		Collision: collision,
	}
}

// LastTimestamp 返回最近一帧的时间戳
func (fd *FrameDriver) LastTimestamp() float64 {
	return fd.lastNow
}

// Snapshot 把每个实体的最终位置和颜色写入 dst 并返回
// dst 可以跨帧复用以避免分配
func (fd *FrameDriver) Snapshot(dst []components.RenderPoint) []components.RenderPoint {
	dst = dst[:0]
	for _, p := range fd.state.Entities.People() {
		dst = append(dst, components.RenderPoint{X: p.Position.X, Y: p.Position.Y, Color: p.Color})
	}
	return dst
}
