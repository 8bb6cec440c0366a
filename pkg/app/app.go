// Package app 提供窗口应用的核心包装器
//
// 该包将初始化逻辑从命令行入口提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 crowdflow window 命令调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/game"
	"github.com/decker502/crowdflow/pkg/scenes"
	"github.com/decker502/crowdflow/pkg/types"
)

// Config 定义应用启动配置
type Config struct {
	// Simulation 模拟配置，为 nil 时从嵌入资源加载
	Simulation *config.SimulationConfig
	// Width/Height 初始窗口尺寸，非正时使用默认值
	Width  int
	Height int
	// Layout 启动时的布局
	Layout types.LayoutID
}

// App 是窗口应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.PeopleScene
	width        int
	height       int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	logger *log.Logger
}

// NewApp 创建并初始化窗口应用
//
// 调用此函数前，如果需要使用嵌入的默认配置，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	logger := log.Default().WithPrefix("App")

	simCfg := cfg.Simulation
	if simCfg == nil {
		var err error
		simCfg, err = config.LoadEmbeddedSimulationConfig()
		if err != nil {
			return nil, fmt.Errorf("模拟配置加载失败: %w", err)
		}
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = config.WindowWidth, config.WindowHeight
	}

	state, err := game.NewSimulationState(simCfg, components.NewViewport(float64(width), float64(height), 1))
	if err != nil {
		return nil, fmt.Errorf("人口创建失败: %w", err)
	}
	driver := game.NewFrameDriver(state, 0)
	if cfg.Layout != types.LayoutScatter {
		driver.SetLayout(cfg.Layout, 0)
	}

	sceneManager := game.NewSceneManager()
	scene := scenes.NewPeopleScene(driver, 0)
	sceneManager.SwitchTo(scene)
	logger.Info("app initialized", "population", simCfg.Population(), "width", width, "height", height)

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		width:        width,
		height:       height,
		logger:       logger,
	}, nil
}

// Size 返回初始窗口尺寸
func (a *App) Size() (int, int) {
	return a.width, a.height
}

// Update 更新模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			a.logger.Debug("delayed SetWindowSize", "width", a.width, "height", a.height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸
// 画布永远铺满窗口，尺寸变化会转成视口事件，由布局引擎重新计算目标点
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	density := 1.0
	if m := ebiten.Monitor(); m != nil {
		density = m.DeviceScaleFactor()
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight, density)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
