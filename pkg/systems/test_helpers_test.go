package systems

import (
	"image/color"
	"math/rand/v2"

	"github.com/decker502/crowdflow/pkg/ecs"
)

// newTestEntityManager 按组人数创建测试用的实体集合
// groups 与 counts 一一对应，颜色统一为白色
func newTestEntityManager(groups []string, counts []int) *ecs.EntityManager {
	total := 0
	for _, c := range counts {
		total += c
	}
	em := ecs.NewEntityManager(total)
	for gi, g := range groups {
		em.RegisterGroup(g)
		for i := 0; i < counts[gi]; i++ {
			em.CreateEntity(g, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return em
}

// defaultTestPopulation 返回与默认配置相同的人口（6 组，共 570 人）
func defaultTestPopulation() *ecs.EntityManager {
	return newTestEntityManager(
		[]string{"A", "B", "C", "D", "E", "F"},
		[]int{120, 110, 100, 90, 80, 70},
	)
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
