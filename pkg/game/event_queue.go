package game

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// EventKind 外部事件类型
type EventKind int

const (
	// EventStep 步骤观察器触发的布局切换
	EventStep EventKind = iota
	// EventResize 视口尺寸变化
	EventResize
)

// Event 外部输入事件
type Event struct {
	Kind EventKind

	// Step 步骤编号（EventStep），可能是任意数字，由驱动负责校验
	Step float64

	// Width/Height/Density 新视口（EventResize）
	Width   float64
	Height  float64
	Density float64
}

// DefaultEventQueueSize 默认队列容量
const DefaultEventQueueSize = 64

// EventQueue 外部输入与帧驱动之间的有类型通道
//
// 生产者可以在任意 goroutine 中推送，推送永不阻塞：队列满时丢弃最旧的事件，
// 不区分类型。被丢弃的视口变化会由前端在尺寸再次变化时重新推送。
// 帧驱动在每帧开始时同步取空队列，事件因此不会打断正在执行的帧。
type EventQueue struct {
	ch      chan Event
	dropped atomic.Int64
	logger  *log.Logger
}

// NewEventQueue 创建事件队列，size 非正时使用默认容量
func NewEventQueue(size int) *EventQueue {
	if size <= 0 {
		size = DefaultEventQueueSize
	}
	return &EventQueue{
		ch:     make(chan Event, size),
		logger: log.Default().WithPrefix("EventQueue"),
	}
}

// PushStep 推送一个步骤事件
func (q *EventQueue) PushStep(step float64) {
	q.push(Event{Kind: EventStep, Step: step})
}

// PushResize 推送一个视口变化事件
func (q *EventQueue) PushResize(width, height, density float64) {
	q.push(Event{Kind: EventResize, Width: width, Height: height, Density: density})
}

func (q *EventQueue) push(ev Event) {
	for {
		select {
		case q.ch <- ev:
			return
		default:
		}
		select {
		case <-q.ch:
			n := q.dropped.Add(1)
			q.logger.Warn("event queue full, dropped oldest event", "dropped", n)
		default:
		}
	}
}

// Drain 非阻塞地取出调用时已在队列中的事件，按到达顺序回调
// 回调期间新到达的事件留给下一帧
//
// 返回:
//   - int: 处理的事件数
func (q *EventQueue) Drain(fn func(Event)) int {
	pending := len(q.ch)
	n := 0
	for n < pending {
		select {
		case ev := <-q.ch:
			fn(ev)
			n++
		default:
			return n
		}
	}
	return n
}

// Len 返回待处理事件数
func (q *EventQueue) Len() int {
	return len(q.ch)
}

// Dropped 返回因队列满而丢弃的事件总数
func (q *EventQueue) Dropped() int64 {
	return q.dropped.Load()
}
