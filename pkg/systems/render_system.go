package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/crowdflow/pkg/components"
)

// 人形图标尺寸（逻辑像素），以实体位置为锚点
const (
	glyphHeadRadius   = 3.2
	glyphHeadOffsetY  = -4.5
	glyphBodyWidth    = 6.5
	glyphBodyHeight   = 10.0
	glyphBodyOffsetY  = -2.0
	glyphCornerRadius = 2.0
)

// RenderSystem 把帧驱动输出的位置画成人形图标（圆头 + 圆角矩形身体）
type RenderSystem struct {
	background color.Color
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(background color.Color) *RenderSystem {
	return &RenderSystem{background: background}
}

// Draw 清屏并绘制所有人形
func (rs *RenderSystem) Draw(screen *ebiten.Image, points []components.RenderPoint) {
	screen.Fill(rs.background)
	for _, p := range points {
		DrawPerson(screen, float32(p.X), float32(p.Y), p.Color)
	}
}

// DrawPerson 以 (x, y) 为锚点绘制一个人形
func DrawPerson(screen *ebiten.Image, x, y float32, clr color.Color) {
	// 头
	vector.DrawFilledCircle(screen, x, y+glyphHeadOffsetY, glyphHeadRadius, clr, true)

	// 身体：两个十字交叠的矩形 + 四个圆角
	x0 := x - glyphBodyWidth/2
	y0 := y + glyphBodyOffsetY
	w := float32(glyphBodyWidth)
	h := float32(glyphBodyHeight)
	r := float32(glyphCornerRadius)

	vector.DrawFilledRect(screen, x0+r, y0, w-2*r, h, clr, true)
	vector.DrawFilledRect(screen, x0, y0+r, w, h-2*r, clr, true)

	vector.DrawFilledCircle(screen, x0+r, y0+r, r, clr, true)
	vector.DrawFilledCircle(screen, x0+w-r, y0+r, r, clr, true)
	vector.DrawFilledCircle(screen, x0+r, y0+h-r, r, clr, true)
	vector.DrawFilledCircle(screen, x0+w-r, y0+h-r, r, clr, true)
}
