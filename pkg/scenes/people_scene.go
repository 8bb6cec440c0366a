package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/game"
	"github.com/decker502/crowdflow/pkg/systems"
	"github.com/decker502/crowdflow/pkg/types"
)

// stepKeys 数字键 1-4 直接跳到对应步骤
var stepKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// PeopleScene 人群动画场景
//
// 自己维护一个毫秒时钟（由 Update 的 deltaTime 累加），
// 每个 tick 把输入转换为步骤事件后推进帧驱动一帧。
type PeopleScene struct {
	driver   *game.FrameDriver
	scroll   *game.ScrollObserver
	renderer *systems.RenderSystem

	clock  float64 // 毫秒
	points []components.RenderPoint

	showStats bool
	lastStats game.FrameStats

	logger *log.Logger
}

// NewPeopleScene 创建人群场景
//
// 参数:
//   - driver: 帧驱动，场景不持有其它模拟状态
//   - now: 帧驱动创建时使用的时间戳，场景时钟从这里继续
func NewPeopleScene(driver *game.FrameDriver, now float64) *PeopleScene {
	s := &PeopleScene{
		driver:   driver,
		renderer: systems.NewRenderSystem(config.BackgroundColor),
		clock:    now,
		points:   make([]components.RenderPoint, 0, driver.State().Entities.Len()),
		logger:   log.Default().WithPrefix("PeopleScene"),
	}
	s.scroll = game.NewScrollObserver(len(types.AllLayouts()), func(step int) {
		driver.Events().PushStep(float64(step))
	})
	return s
}

// Update 处理输入并推进一帧
// deltaTime 为秒
func (s *PeopleScene) Update(deltaTime float64) {
	s.handleInput()
	s.advance(deltaTime)
}

// advance 推进场景时钟并运行一帧
func (s *PeopleScene) advance(deltaTime float64) {
	if deltaTime > 0 {
		s.clock += deltaTime * 1000
	}
	s.lastStats = s.driver.Step(s.clock)
	s.points = s.driver.Snapshot(s.points)
}

func (s *PeopleScene) handleInput() {
	for i, key := range stepKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.scroll.Jump(i)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.scroll.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		s.scroll.Prev()
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		// 滚轮向下为负
		s.scroll.Scroll(-wy * config.WheelStepPixels)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.showStats = !s.showStats
	}
}

// Draw 绘制人群与状态标签
func (s *PeopleScene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen, s.points)
	ebitenutil.DebugPrintAt(screen, s.driver.Label(), config.LabelX, config.LabelY)

	if s.showStats {
		st := s.lastStats
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  %s  tps %.0f\npairs %d  corrected %d  coincident %d",
			st.Frame, st.Phase, ebiten.ActualTPS(),
			st.Collision.PairsChecked, st.Collision.PairsCorrected, st.Collision.DegenerateSkips),
			config.LabelX, config.LabelY+16)
	}
}

// Resize 实现 game.Resizable，尺寸变化在下一帧开始时生效
func (s *PeopleScene) Resize(width, height int, pixelDensity float64) {
	s.driver.Events().PushResize(float64(width), float64(height), pixelDensity)
	s.logger.Debug("window resized", "width", width, "height", height, "density", pixelDensity)
}

// Clock 返回场景时钟（毫秒）
func (s *PeopleScene) Clock() float64 {
	return s.clock
}

// Points 返回最近一帧的渲染点
func (s *PeopleScene) Points() []components.RenderPoint {
	return s.points
}
