package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application (e.g., the crowd animation).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于接收窗口尺寸变化
//
// 实现此接口的场景会在 SceneManager.Resize 时收到新的逻辑尺寸和设备像素比，
// 通常在 ebiten.Game.Layout 中触发。
type Resizable interface {
	Resize(width, height int, pixelDensity float64)
}
