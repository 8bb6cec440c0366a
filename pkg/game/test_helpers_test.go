package game

import (
	"testing"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
)

// frameMs 60 FPS 下一帧的时长
const frameMs = 1000.0 / 60

// newTestDriver 创建固定种子的默认人口帧驱动
func newTestDriver(t *testing.T, width, height float64, mutate func(*config.SimulationConfig)) *FrameDriver {
	t.Helper()
	cfg := config.DefaultSimulationConfig()
	cfg.Seed = 42
	if mutate != nil {
		mutate(cfg)
	}
	state, err := NewSimulationState(cfg, components.NewViewport(width, height, 1))
	if err != nil {
		t.Fatalf("NewSimulationState: %v", err)
	}
	return NewFrameDriver(state, 0)
}

type point struct{ x, y float64 }

func tweenTargets(fd *FrameDriver) []point {
	people := fd.State().Entities.People()
	out := make([]point, len(people))
	for i, p := range people {
		out[i] = point{p.Tween.TX, p.Tween.TY}
	}
	return out
}

func layoutTargets(fd *FrameDriver) []point {
	people := fd.State().Entities.People()
	out := make([]point, len(people))
	for i, p := range people {
		out[i] = point{p.Next.NX, p.Next.NY}
	}
	return out
}
