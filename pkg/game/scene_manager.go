package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the application's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	width        int
	height       int
	density      float64
	logger       *log.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		logger: log.Default().WithPrefix("SceneManager"),
	}
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
// 如果新场景实现了 Resizable，会立即收到最近一次的窗口尺寸。
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height, sm.density)
	}
	sm.logger.Debug("scene switched")
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Resize 记录窗口尺寸，并在尺寸变化时通知当前场景
//
// 参数：
//   - width, height: 逻辑尺寸（与设备像素比无关）
//   - pixelDensity: 设备像素比
func (sm *SceneManager) Resize(width, height int, pixelDensity float64) {
	if width == sm.width && height == sm.height && pixelDensity == sm.density {
		return
	}
	sm.width, sm.height, sm.density = width, height, pixelDensity
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height, pixelDensity)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
