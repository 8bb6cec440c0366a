package config

import "image/color"

// 窗口配置
const (
	// WindowWidth 默认窗口宽度（逻辑像素）
	WindowWidth = 1280

	// WindowHeight 默认窗口高度（逻辑像素）
	WindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "crowdflow"

	// WheelStepPixels 鼠标滚轮一格对应的滚动距离
	WheelStepPixels = 60.0

	// LabelX/LabelY 状态标签的绘制位置
	LabelX = 12
	LabelY = 8
)

// BackgroundColor 画布背景色
var BackgroundColor = color.RGBA{R: 0x11, G: 0x11, B: 0x16, A: 0xff}
