package components

import "image/color"

// RenderPoint 交给外部渲染器的每帧输出
// 渲染器只负责画出固定的人形图标，不读取其它实体状态
type RenderPoint struct {
	X, Y  float64
	Color color.RGBA
}
