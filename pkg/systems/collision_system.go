package systems

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/decker502/crowdflow/pkg/ecs"
)

// cellKey 空间哈希的格子键
// 把两个 32 位格子坐标打包进一个 uint64，避免在每帧热路径上拼接字符串
type cellKey uint64

func packCell(cx, cy int32) cellKey {
	return cellKey(uint64(uint32(cx))<<32 | uint64(uint32(cy)))
}

// cellCoord 实体入桶时所在的格子
type cellCoord struct {
	cx, cy int32
}

// CollisionStats 单次求解的统计
type CollisionStats struct {
	PairsChecked    int // 进入距离判断的点对数
	PairsCorrected  int // 发生位置修正的点对数
	DegenerateSkips int // 距离为 0 被跳过的点对数（方向未定义）
}

// CollisionSystem 基于均匀空间哈希的碰撞求解器
//
// 只修正位置，不改变速度：它是积分之后的约束，而不是一个力。
// 格子边长为 2 × minDistance，每个实体只检查自身及 8 个相邻格子，
// 在密度大致均匀时复杂度接近线性。
type CollisionSystem struct {
	em     *ecs.EntityManager
	logger *log.Logger

	// 跨帧复用的桶，避免每帧重新分配
	grid  map[cellKey][]ecs.EntityID
	cells []cellCoord

	last CollisionStats
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(em *ecs.EntityManager) *CollisionSystem {
	return &CollisionSystem{
		em:     em,
		logger: log.Default().WithPrefix("Collision"),
		grid:   make(map[cellKey][]ecs.EntityID),
		cells:  make([]cellCoord, 0, em.Len()),
	}
}

// LastStats 返回最近一次 Resolve 的统计
func (cs *CollisionSystem) LastStats() CollisionStats {
	return cs.last
}

// Resolve 分离所有距离小于 minDistance 的实体对
//
// 对于全局顺序中 j > i 的每个无序点对 (i, j)，若距离平方在 (0, minDistance²) 内，
// 沿连线方向各推开 (minDistance - d) / d 的一半。
// 距离恰好为 0 的点对没有确定方向，直接跳过（已知限制，不做抖动处理）。
//
// 参数:
//   - minDistance: 最小中心距，非正值时不做任何处理
//
// 返回:
//   - CollisionStats: 本次求解的统计
func (cs *CollisionSystem) Resolve(minDistance float64) CollisionStats {
	stats := CollisionStats{}
	if !(minDistance > 0) {
		cs.last = stats
		return stats
	}

	people := cs.em.People()
	cellSize := minDistance * 2
	cs.rebuild(cellSize)

	minDist2 := minDistance * minDistance

	for i := range people {
		a := &people[i]
		home := cs.cells[i]

		for oy := int32(-1); oy <= 1; oy++ {
			for ox := int32(-1); ox <= 1; ox++ {
				bucket := cs.grid[packCell(home.cx+ox, home.cy+oy)]
				for _, j := range bucket {
					if int(j) <= i {
						continue
					}
					b := &people[j]
					stats.PairsChecked++

					dx := b.Position.X - a.Position.X
					dy := b.Position.Y - a.Position.Y
					d2 := dx*dx + dy*dy

					if d2 >= minDist2 {
						continue
					}
					if d2 == 0 {
						stats.DegenerateSkips++
						continue
					}

					d := math.Sqrt(d2)
					push := (minDistance - d) / d * 0.5
					px := dx * push
					py := dy * push
					a.Position.X -= px
					a.Position.Y -= py
					b.Position.X += px
					b.Position.Y += py
					stats.PairsCorrected++
				}
			}
		}
	}

	if stats.DegenerateSkips > 0 {
		cs.logger.Debug("coincident entities skipped", "pairs", stats.DegenerateSkips)
	}
	cs.last = stats
	return stats
}

// rebuild 按当前位置重新入桶
//
// 桶切片截断为零长度后复用；格子数量远超人口时整体清空，
// 避免长时间运行后残留大量空桶。
func (cs *CollisionSystem) rebuild(cellSize float64) {
	people := cs.em.People()

	if len(cs.grid) > 4*len(people)+64 {
		clear(cs.grid)
	} else {
		for k, b := range cs.grid {
			cs.grid[k] = b[:0]
		}
	}

	cs.cells = cs.cells[:0]
	for i := range people {
		p := &people[i]
		c := cellCoord{
			cx: cellIndex(p.Position.X, cellSize),
			cy: cellIndex(p.Position.Y, cellSize),
		}
		cs.cells = append(cs.cells, c)
		k := packCell(c.cx, c.cy)
		cs.grid[k] = append(cs.grid[k], ecs.EntityID(i))
	}
}

// cellIndex 向下取整得到格子坐标，非有限值归入 0 号格
func cellIndex(v, cellSize float64) int32 {
	f := math.Floor(v / cellSize)
	if math.IsNaN(f) {
		return 0
	}
	if f > math.MaxInt32-1 {
		return math.MaxInt32 - 1
	}
	if f < math.MinInt32+1 {
		return math.MinInt32 + 1
	}
	return int32(f)
}
