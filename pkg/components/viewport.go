package components

import "math"

// ViewportComponent 画布的逻辑尺寸
// Width/Height 为逻辑像素（与设备像素比无关），PixelDensity 仅供渲染器使用
type ViewportComponent struct {
	Width        float64
	Height       float64
	PixelDensity float64
}

// NewViewport 创建视口并规范化尺寸
//
// 宽高向下取整并至少为 1，避免布局计算中出现除零或负区间；
// 像素密度非正或非有限时回退为 1。
func NewViewport(width, height, pixelDensity float64) ViewportComponent {
	return ViewportComponent{
		Width:        normalizeExtent(width),
		Height:       normalizeExtent(height),
		PixelDensity: normalizeDensity(pixelDensity),
	}
}

func normalizeExtent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	return math.Max(1, math.Floor(v))
}

func normalizeDensity(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 1
	}
	return d
}

// Inset 返回视口内缩后的可用区间
//
// 当视口比内缩边距还小时，区间塌缩到视口中心，保证 min <= max。
//
// 返回:
//   - minX, maxX, minY, maxY: 闭区间边界
func (v ViewportComponent) Inset(left, right, top, bottom float64) (minX, maxX, minY, maxY float64) {
	minX, maxX = insetRange(v.Width, left, right)
	minY, maxY = insetRange(v.Height, top, bottom)
	return minX, maxX, minY, maxY
}

func insetRange(extent, lo, hi float64) (float64, float64) {
	a := lo
	b := extent - hi
	if b < a {
		mid := extent / 2
		return mid, mid
	}
	return a, b
}
