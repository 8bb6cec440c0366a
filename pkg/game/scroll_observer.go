package game

import (
	"math"

	"github.com/decker502/crowdflow/pkg/utils"
)

// 滚动观察器默认参数
const (
	// DefaultStepSpan 每个步骤占据的滚动距离（逻辑像素）
	DefaultStepSpan = 600.0

	// DefaultTriggerOffset 触发线在步骤内的相对位置，越过触发线即进入下一步
	DefaultTriggerOffset = 0.6
)

// ScrollObserver 把连续的滚动偏移离散成步骤编号
//
// 页面被划分为 steps 个等高区段，触发线位于偏移 + trigger·span 处；
// 触发线进入新的区段时回调 onEnter。窗口端的滚轮、方向键和终端端的按键
// 都通过它产生步骤事件，再由帧驱动校验并切换布局。
type ScrollObserver struct {
	steps   int
	span    float64
	trigger float64

	offset  float64
	current int

	onEnter func(step int)
}

// NewScrollObserver 创建滚动观察器，初始停在第 0 步
//
// 参数:
//   - steps: 步骤数量（至少为 1）
//   - onEnter: 进入新步骤时的回调，可以为 nil
func NewScrollObserver(steps int, onEnter func(step int)) *ScrollObserver {
	so := &ScrollObserver{
		steps:   max(1, steps),
		span:    DefaultStepSpan,
		trigger: DefaultTriggerOffset,
		onEnter: onEnter,
	}
	so.offset = so.restOffset(0)
	return so
}

// Current 返回当前步骤
func (so *ScrollObserver) Current() int {
	return so.current
}

// Offset 返回当前滚动偏移
func (so *ScrollObserver) Offset() float64 {
	return so.offset
}

// Scroll 按 delta 滚动，返回是否进入了新的步骤
func (so *ScrollObserver) Scroll(delta float64) bool {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return false
	}
	maxOffset := float64(so.steps)*so.span - so.trigger*so.span
	so.offset = utils.Clamp(so.offset+delta, -so.trigger*so.span, maxOffset-1e-9)
	return so.update()
}

// Jump 直接滚动到第 step 步的中央
func (so *ScrollObserver) Jump(step int) bool {
	if step < 0 || step >= so.steps {
		return false
	}
	so.offset = so.restOffset(step)
	return so.update()
}

// Next 前进一步，已在最后一步时无效果
func (so *ScrollObserver) Next() bool {
	return so.Jump(so.current + 1)
}

// Prev 后退一步，已在第 0 步时无效果
func (so *ScrollObserver) Prev() bool {
	return so.Jump(so.current - 1)
}

// restOffset 让触发线落在第 step 个区段中央的偏移
func (so *ScrollObserver) restOffset(step int) float64 {
	return (float64(step) + 0.5 - so.trigger) * so.span
}

func (so *ScrollObserver) update() bool {
	line := so.offset + so.trigger*so.span
	step := int(math.Floor(line / so.span))
	step = max(0, min(so.steps-1, step))
	if step == so.current {
		return false
	}
	so.current = step
	if so.onEnter != nil {
		so.onEnter(step)
	}
	return true
}
