package systems

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/ecs"
	"github.com/decker502/crowdflow/pkg/types"
	"github.com/decker502/crowdflow/pkg/utils"
)

// LayoutSystem 布局引擎
//
// 根据布局类型和视口尺寸为每个实体计算目标点，结果只写入 Next 字段。
// 除散点布局使用随机数外，其余布局都是布局类型与视口的纯函数。
type LayoutSystem struct {
	em     *ecs.EntityManager
	rng    *rand.Rand
	logger *log.Logger

	// 组内洗牌的复用缓冲区
	shuffleBuf []shuffleEntry
}

// shuffleEntry 稳定洗牌的排序键
type shuffleEntry struct {
	id  ecs.EntityID
	key int
}

// NewLayoutSystem 创建布局系统
//
// 参数:
//   - em: 实体管理器
//   - rng: 散点布局使用的随机源，由调用方持有种子以便复现
func NewLayoutSystem(em *ecs.EntityManager, rng *rand.Rand) *LayoutSystem {
	return &LayoutSystem{
		em:     em,
		rng:    rng,
		logger: log.Default().WithPrefix("Layout"),
	}
}

// Apply 计算指定布局的目标点并写入每个实体的 Next
// 未知布局不做任何修改
func (ls *LayoutSystem) Apply(layout types.LayoutID, vp components.ViewportComponent) {
	switch layout {
	case types.LayoutScatter:
		ls.applyScatter(vp)
	case types.LayoutGrouped:
		ls.applyGrouped(vp)
	case types.LayoutStacked:
		ls.applyStacked(vp)
	case types.LayoutNormalizedBar:
		ls.applyNormalizedBar(vp)
	default:
		ls.logger.Warn("unknown layout, targets unchanged", "layout", int(layout))
		return
	}
	ls.logger.Debug("layout applied", "layout", layout, "width", vp.Width, "height", vp.Height, "entities", ls.em.Len())
}

// applyScatter 在内缩边距内随机重抽漂浮基准点，目标点即基准点
// 实际的漂浮扰动由帧驱动每帧叠加
func (ls *LayoutSystem) applyScatter(vp components.ViewportComponent) {
	pad := config.ScatterPadding
	spanX := math.Max(0, vp.Width-pad*2)
	spanY := math.Max(0, vp.Height-pad*2)

	people := ls.em.People()
	for i := range people {
		p := &people[i]
		p.Float.BX = pad + ls.rng.Float64()*spanX
		p.Float.BY = pad + ls.rng.Float64()*spanY
		p.Next.NX = p.Float.BX
		p.Next.NY = p.Float.BY
	}
}

// applyGrouped 分组螺旋布局
//
// 各组排成固定 3 列的网格，格子中心在视口内均匀分布；
// 组内成员先做确定性洗牌，再按向日葵式螺旋围绕组中心排布。
func (ls *LayoutSystem) applyGrouped(vp components.ViewportComponent) {
	groups := ls.em.Groups()
	cols := config.GroupedColumns
	rows := (len(groups) + cols - 1) / cols

	cellW := vp.Width / float64(cols+1)
	cellH := vp.Height / float64(rows+1)

	for idx, g := range groups {
		col := idx % cols
		row := idx / cols
		cx := cellW * float64(col+1)
		cy := cellH * float64(row+1)

		for i, e := range ls.stableShuffle(ls.em.GroupMembers(g)) {
			angle := float64(i) * config.GroupedSpiralAngleStep
			radius := config.GroupedSpiralSpacing * math.Sqrt(float64(i))
			p := ls.em.Get(e.id)
			p.Next.NX = cx + math.Cos(angle)*radius
			p.Next.NY = cy + math.Sin(angle)*radius
		}
	}
}

// stableShuffle 按成员在组内的下标生成线性同余键并稳定排序
//
// 不依赖任何随机源，每次调用都从下标重新计算，
// 因此人口不变时重复布局得到完全相同的顺序。
// 返回的切片复用内部缓冲区，下次调用前有效。
func (ls *LayoutSystem) stableShuffle(members []ecs.EntityID) []shuffleEntry {
	buf := ls.shuffleBuf[:0]
	for i, id := range members {
		buf = append(buf, shuffleEntry{id: id, key: ShuffleKey(i)})
	}
	slices.SortStableFunc(buf, func(a, b shuffleEntry) int {
		return cmp.Compare(a.key, b.key)
	})
	ls.shuffleBuf = buf
	return buf
}

// ShuffleKey 返回组内第 i 个成员的洗牌键
func ShuffleKey(i int) int {
	return (i*config.ShuffleMultiplier + config.ShuffleIncrement) % config.ShuffleModulus
}

// applyStacked 堆叠布局
//
// 每组一个固定列数的方块，从左到右排列；组内成员逐行填满 12 列，
// 第 0 行在基线上，往上堆叠。整排方块水平居中，但不小于左边距。
func (ls *LayoutSystem) applyStacked(vp components.ViewportComponent) {
	groups := ls.em.Groups()
	cols := config.StackedColumnsPerGroup
	step := config.StackedCell + config.StackedGap

	blockW := config.StackedBlockWidth()
	n := float64(len(groups))
	totalW := n*blockW + math.Max(0, n-1)*config.StackedGroupGap

	x := utils.Clamp((vp.Width-totalW)/2, config.StackedSideMargin, vp.Width)
	baseY := vp.Height - config.StackedBaselineOffset

	for _, g := range groups {
		for i, id := range ls.em.GroupMembers(g) {
			col := i % cols
			row := i / cols
			p := ls.em.Get(id)
			p.Next.NX = x + float64(col)*step
			p.Next.NY = baseY - float64(row)*step
		}
		x += blockW + config.StackedGroupGap
	}
}

// applyNormalizedBar 100% 条形布局
//
// 所有成员按组顺序连接，排进一个固定列数的宽网格（行优先），
// 整体锚定在视口底部居中，左右与底部保留边距。
func (ls *LayoutSystem) applyNormalizedBar(vp components.ViewportComponent) {
	cols := config.BarColumns
	step := config.BarCell + config.BarGap

	total := ls.em.Len()
	rows := (total + cols - 1) / cols

	barW := config.BarWidth()
	barH := float64(rows)*step - config.BarGap

	startX := utils.Clamp((vp.Width-barW)/2, config.BarMarginSide, vp.Width-barW-config.BarMarginSide)
	startY := vp.Height - config.BarMarginBottom - barH

	i := 0
	for _, g := range ls.em.Groups() {
		for _, id := range ls.em.GroupMembers(g) {
			col := i % cols
			row := i / cols
			p := ls.em.Get(id)
			p.Next.NX = startX + float64(col)*step
			p.Next.NY = startY + float64(row)*step
			i++
		}
	}
}
