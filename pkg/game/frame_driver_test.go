package game

import (
	"math"
	"testing"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/types"
)

func TestNewSimulationState(t *testing.T) {
	fd := newTestDriver(t, 800, 600, nil)
	state := fd.State()

	if got := state.Entities.Len(); got != 570 {
		t.Fatalf("人口 = %d, 期望 570", got)
	}
	if state.Layout != types.LayoutScatter {
		t.Errorf("初始布局 = %v, 期望 scatter", state.Layout)
	}
	if fd.Label() != "Scatter (Floating)" {
		t.Errorf("Label() = %q", fd.Label())
	}
	if state.Seed != 42 {
		t.Errorf("Seed = %d, 期望 42", state.Seed)
	}
	for i, p := range state.Entities.People() {
		if p.Position.X < 0 || p.Position.X > 800 || p.Position.Y < 0 || p.Position.Y > 600 {
			t.Fatalf("实体 %d 初始位置 (%v, %v) 不在视口内", i, p.Position.X, p.Position.Y)
		}
		if p.Velocity.VX != 0 || p.Velocity.VY != 0 {
			t.Fatalf("实体 %d 初始速度不为 0", i)
		}
	}
}

// TestSimulationStateSeeded 相同种子得到相同的初始状态
func TestSimulationStateSeeded(t *testing.T) {
	a := newTestDriver(t, 640, 480, nil)
	b := newTestDriver(t, 640, 480, nil)

	pa, pb := a.State().Entities.People(), b.State().Entities.People()
	for i := range pa {
		if pa[i].Position != pb[i].Position || pa[i].Next != pb[i].Next || pa[i].Float != pb[i].Float {
			t.Fatalf("实体 %d 在相同种子下不一致", i)
		}
	}
}

// TestFrameDriverStaysInBounds 任意帧结束后所有实体都在内缩区间内
func TestFrameDriverStaysInBounds(t *testing.T) {
	fd := newTestDriver(t, 500, 400, nil)

	steps := map[int]float64{60: 1, 120: 2, 180: 3, 240: 0, 300: 2}
	now := 0.0
	for frame := 1; frame <= 360; frame++ {
		if s, ok := steps[frame]; ok {
			fd.Events().PushStep(s)
		}
		if frame == 200 {
			fd.Events().PushResize(320, 240, 2)
		}
		now += frameMs
		fd.Step(now)

		minX, maxX, minY, maxY := fd.Bounds()
		for i, p := range fd.State().Entities.People() {
			if p.Position.X < minX || p.Position.X > maxX || p.Position.Y < minY || p.Position.Y > maxY {
				t.Fatalf("第 %d 帧实体 %d 位置 (%v, %v) 超出 [%v,%v]x[%v,%v]",
					frame, i, p.Position.X, p.Position.Y, minX, maxX, minY, maxY)
			}
		}
	}
}

// TestFrameDriverInvalidSteps 非法步骤编号不改变布局也不重启过渡
func TestFrameDriverInvalidSteps(t *testing.T) {
	fd := newTestDriver(t, 800, 600, nil)
	fd.Step(1000)
	if fd.Phase(1000) != PhaseIdle {
		t.Fatal("初始过渡窗口结束后应为 idle")
	}

	tests := []struct {
		name string
		step float64
	}{
		{"NaN", math.NaN()},
		{"正无穷", math.Inf(1)},
		{"负数", -1},
		{"越界", 4},
		{"小数", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fd.HandleStep(tt.step, 1100) {
				t.Errorf("HandleStep(%v) 返回 true", tt.step)
			}
			fd.Events().PushStep(tt.step)
			stats := fd.Step(1100)
			if stats.Events != 1 {
				t.Errorf("Events = %d, 期望 1", stats.Events)
			}
			if fd.Layout() != types.LayoutScatter {
				t.Errorf("布局 = %v, 期望保持 scatter", fd.Layout())
			}
			if stats.Phase != PhaseIdle {
				t.Error("非法步骤不应重启过渡")
			}
		})
	}
}

// TestFrameDriverValidSteps 合法步骤编号映射到对应布局
func TestFrameDriverValidSteps(t *testing.T) {
	fd := newTestDriver(t, 800, 600, nil)

	for _, l := range []types.LayoutID{types.LayoutGrouped, types.LayoutStacked, types.LayoutNormalizedBar, types.LayoutScatter} {
		if !fd.HandleStep(float64(l), 100) {
			t.Fatalf("HandleStep(%d) 返回 false", l)
		}
		if fd.Layout() != l {
			t.Errorf("布局 = %v, 期望 %v", fd.Layout(), l)
		}
		if fd.Phase(100) != PhaseTransitioning {
			t.Errorf("切换到 %v 后应处于过渡中", l)
		}
	}
}

// TestFrameDriverMidTransitionSwitch 过渡中途切换布局时插值目标连续
func TestFrameDriverMidTransitionSwitch(t *testing.T) {
	fd := newTestDriver(t, 1024, 768, func(cfg *config.SimulationConfig) {
		cfg.Collision.MinDistance = 0.001
	})

	for now := 50.0; now <= 450; now += 50 {
		fd.Step(now)
	}
	before := tweenTargets(fd)

	fd.Events().PushStep(float64(types.LayoutStacked))
	stats := fd.Step(450)
	if stats.Layout != types.LayoutStacked {
		t.Fatalf("布局 = %v, 期望 stacked", stats.Layout)
	}

	after := tweenTargets(fd)
	for i := range before {
		if d := math.Hypot(after[i].x-before[i].x, after[i].y-before[i].y); d > 1e-9 {
			t.Fatalf("切换瞬间实体 %d 插值目标跳变 %v", i, d)
		}
	}

	fd.Step(451)
	next := tweenTargets(fd)
	for i := range before {
		if d := math.Hypot(next[i].x-before[i].x, next[i].y-before[i].y); d >= 1 {
			t.Fatalf("切换后第一帧实体 %d 插值目标移动 %v px", i, d)
		}
	}

	// 新过渡从 450 起算，1350 时插值目标精确等于布局目标
	fd.Step(1350)
	targets := layoutTargets(fd)
	for i, p := range tweenTargets(fd) {
		if p != targets[i] {
			t.Fatalf("实体 %d 插值目标 %v != 布局目标 %v", i, p, targets[i])
		}
	}
	if fd.Phase(1350) != PhaseIdle {
		t.Error("过渡结束后应为 idle")
	}
}

// TestFrameDriverConverges 停留在非散点布局时实体收敛到目标点
func TestFrameDriverConverges(t *testing.T) {
	fd := newTestDriver(t, 1280, 720, func(cfg *config.SimulationConfig) {
		cfg.Collision.MinDistance = 0.001
	})
	fd.SetLayout(types.LayoutNormalizedBar, 0)

	now := 0.0
	for range 600 {
		now += frameMs
		fd.Step(now)
	}

	targets := layoutTargets(fd)
	for i, p := range fd.State().Entities.People() {
		if d := math.Hypot(p.Position.X-targets[i].x, p.Position.Y-targets[i].y); d > 0.5 {
			t.Fatalf("实体 %d 距目标 %v px", i, d)
		}
	}
}

// TestFrameDriverGroupedIdempotent 重复切换到分组布局得到完全相同的目标点
func TestFrameDriverGroupedIdempotent(t *testing.T) {
	fd := newTestDriver(t, 900, 700, nil)

	fd.SetLayout(types.LayoutGrouped, 100)
	first := layoutTargets(fd)
	fd.Step(200)
	fd.SetLayout(types.LayoutGrouped, 300)
	second := layoutTargets(fd)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("实体 %d 目标点 %v != %v", i, first[i], second[i])
		}
	}
}

// TestFrameDriverEmptyGroupKeepsSlot 配置中人数为 0 的组仍然占据分组网格中的位置
func TestFrameDriverEmptyGroupKeepsSlot(t *testing.T) {
	fd := newTestDriver(t, 300, 200, func(cfg *config.SimulationConfig) {
		cfg.Groups = []config.GroupConfig{
			{Key: "A", Count: 0, Color: "#ff6666"},
			{Key: "B", Count: 1, Color: "#cc0000"},
		}
	})

	groups := fd.State().Entities.Groups()
	if len(groups) != 2 || groups[0] != "A" || groups[1] != "B" {
		t.Fatalf("Groups() = %v, 期望 [A B]", groups)
	}

	fd.SetLayout(types.LayoutGrouped, 100)
	got := layoutTargets(fd)
	if len(got) != 1 || math.Abs(got[0].x-150) > 1e-9 || math.Abs(got[0].y-100) > 1e-9 {
		t.Errorf("B 的目标 = %v, 期望 (150, 100)", got)
	}
}

// TestFrameDriverResize 视口变化重新计算当前布局，相同尺寸不重复计算
func TestFrameDriverResize(t *testing.T) {
	fd := newTestDriver(t, 800, 600, nil)
	fd.SetLayout(types.LayoutStacked, 0)
	fd.Step(1000)
	before := layoutTargets(fd)

	fd.Events().PushResize(1200.7, 900.2, 2)
	stats := fd.Step(1100)

	vp := fd.State().Viewport
	if vp.Width != 1200 || vp.Height != 900 || vp.PixelDensity != 2 {
		t.Errorf("视口 = %+v", vp)
	}
	if stats.Phase != PhaseTransitioning {
		t.Error("视口变化后应重新开始过渡")
	}
	after := layoutTargets(fd)
	if after[0] == before[0] {
		t.Error("视口变化后目标点未重新计算")
	}

	fd.Step(2100)
	fd.Events().PushResize(1200, 900, 2)
	if stats := fd.Step(2200); stats.Phase != PhaseIdle {
		t.Error("相同视口不应重启过渡")
	}

	fd.Events().PushResize(0, -5, math.NaN())
	fd.Step(3300)
	vp = fd.State().Viewport
	if vp.Width != 1 || vp.Height != 1 || vp.PixelDensity != 1 {
		t.Errorf("退化视口 = %+v, 期望 1x1@1", vp)
	}
}

func TestFrameDriverSnapshot(t *testing.T) {
	fd := newTestDriver(t, 800, 600, nil)
	stats := fd.Step(frameMs)
	if stats.Frame != 1 {
		t.Errorf("Frame = %d, 期望 1", stats.Frame)
	}
	if fd.LastTimestamp() != frameMs {
		t.Errorf("LastTimestamp() = %v", fd.LastTimestamp())
	}

	points := fd.Snapshot(nil)
	if len(points) != 570 {
		t.Fatalf("Snapshot 长度 = %d, 期望 570", len(points))
	}
	people := fd.State().Entities.People()
	for i, pt := range points {
		if pt.X != people[i].Position.X || pt.Y != people[i].Position.Y || pt.Color != people[i].Color {
			t.Fatalf("第 %d 个渲染点与实体不一致", i)
		}
	}

	reused := fd.Snapshot(points)
	if &reused[0] != &points[0] {
		t.Error("Snapshot 应复用传入的切片")
	}
}

func BenchmarkFrameDriverStep(b *testing.B) {
	cfg := config.DefaultSimulationConfig()
	cfg.Seed = 1
	state, err := NewSimulationState(cfg, components.NewViewport(1280, 720, 1))
	if err != nil {
		b.Fatal(err)
	}
	fd := NewFrameDriver(state, 0)

	b.ReportAllocs()
	b.ResetTimer()
	now := 0.0
	for i := 0; i < b.N; i++ {
		if i%120 == 0 {
			fd.Events().PushStep(float64((i / 120) % 4))
		}
		now += frameMs
		fd.Step(now)
	}
}
