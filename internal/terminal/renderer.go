// Package terminal 用 tcell 把人群画到终端里
//
// 每个终端格子对应固定大小的逻辑像素块，实体落在哪个格子就画一个带颜色的圆点。
// 输入事件由独立的 goroutine 读取，只通过帧驱动的事件队列影响模拟。
package terminal

import (
	"context"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/game"
	"github.com/decker502/crowdflow/pkg/types"
)

// 终端格子与逻辑像素的换算：字符大约是 1:2 的竖长方形
const (
	CellWidth  = 8.0
	CellHeight = 16.0

	// FrameInterval 帧间隔，约 60 FPS
	FrameInterval = 16 * time.Millisecond

	personRune = '●'
	stackRune  = '◉'
)

// Renderer 终端渲染器
type Renderer struct {
	screen tcell.Screen
	driver *game.FrameDriver
	scroll *game.ScrollObserver

	points []components.RenderPoint
	styles map[color.RGBA]tcell.Style

	// occupancy 每个格子上落了几个实体，复用于每帧
	occupancy []uint16
	cols      int
	rows      int

	logger *log.Logger
}

// New 创建终端渲染器
//
// 参数:
//   - screen: 已经 Init 的 tcell 屏幕（测试中可以是 SimulationScreen）
//   - driver: 帧驱动
func New(screen tcell.Screen, driver *game.FrameDriver) *Renderer {
	r := &Renderer{
		screen: screen,
		driver: driver,
		styles: make(map[color.RGBA]tcell.Style),
		logger: log.Default().WithPrefix("Terminal"),
	}
	r.scroll = game.NewScrollObserver(len(types.AllLayouts()), func(step int) {
		driver.Events().PushStep(float64(step))
	})
	r.syncSize()
	return r
}

// ViewportFor 返回终端尺寸对应的逻辑视口
// 第 0 行留给状态标签
func ViewportFor(cols, rows int) (width, height float64) {
	return float64(cols) * CellWidth, float64(max(0, rows-1)) * CellHeight
}

// syncSize 读取屏幕尺寸并推送视口事件
func (r *Renderer) syncSize() {
	cols, rows := r.screen.Size()
	if cols == r.cols && rows == r.rows {
		return
	}
	r.cols, r.rows = cols, rows
	r.occupancy = make([]uint16, cols*rows)
	w, h := ViewportFor(cols, rows)
	r.driver.Events().PushResize(w, h, 1)
	r.logger.Debug("terminal resized", "cols", cols, "rows", rows)
}

// Run 运行渲染循环，直到 ctx 取消或用户退出
//
// tcell 的 PollEvent 是阻塞调用，因此放在单独的 goroutine 中，
// 与帧计时器在同一个 select 中汇合。
func (r *Renderer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	start := time.Now()
	r.logger.Info("terminal renderer started", "cols", r.cols, "rows", r.rows)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case t := <-ticker.C:
			now := float64(t.Sub(start).Microseconds()) / 1000
			r.Frame(now)
		}
	}
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelDown != 0:
			r.scroll.Scroll(CellHeight * 4)
		case btn&tcell.WheelUp != 0:
			r.scroll.Scroll(-CellHeight * 4)
		}

	case *tcell.EventResize:
		r.screen.Sync()
		r.syncSize()
	}
	return true
}

func (r *Renderer) handleKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown, tcell.KeyRight, tcell.KeyPgDn:
		r.scroll.Next()
	case tcell.KeyUp, tcell.KeyLeft, tcell.KeyPgUp:
		r.scroll.Prev()
	case tcell.KeyRune:
		switch {
		case ch == 'q':
			return false
		case ch >= '1' && ch <= '4':
			r.scroll.Jump(int(ch - '1'))
		case ch == ' ' || ch == 'j':
			r.scroll.Next()
		case ch == 'k':
			r.scroll.Prev()
		}
	}
	return true
}

// Frame 推进一帧并重绘
func (r *Renderer) Frame(now float64) game.FrameStats {
	stats := r.driver.Step(now)
	r.points = r.driver.Snapshot(r.points)
	r.Draw()
	return stats
}

// Draw 把最近的快照画到屏幕上
func (r *Renderer) Draw() {
	r.screen.Clear()
	clear(r.occupancy)

	for _, p := range r.points {
		cx := int(p.X / CellWidth)
		cy := int(p.Y/CellHeight) + 1
		if cx < 0 || cx >= r.cols || cy < 1 || cy >= r.rows {
			continue
		}
		idx := cy*r.cols + cx
		r.occupancy[idx]++
		ch := personRune
		if r.occupancy[idx] > 1 {
			ch = stackRune
		}
		r.screen.SetContent(cx, cy, ch, nil, r.style(p.Color))
	}

	r.drawLabel(r.driver.Label())
	r.screen.Show()
}

func (r *Renderer) drawLabel(label string) {
	style := tcell.StyleDefault.Bold(true)
	x := 1
	for _, ch := range label {
		if x >= r.cols {
			break
		}
		r.screen.SetContent(x, 0, ch, nil, style)
		x++
	}
}

// style 按颜色缓存 tcell 样式
func (r *Renderer) style(c color.RGBA) tcell.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	s := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	r.styles[c] = s
	return s
}
