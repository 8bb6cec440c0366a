// Package scenes 实现窗口端的场景
//
// 场景只负责输入与绘制：把键盘、滚轮和窗口尺寸转换成帧驱动的事件，
// 并把帧驱动的快照画到屏幕上。所有模拟逻辑都在 pkg/game 中。
package scenes

import (
	"github.com/decker502/crowdflow/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene
