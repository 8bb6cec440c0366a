package components

import "image/color"

// PositionComponent 实体的当前位置（像素，相对视口左上角）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体的当前速度（像素/帧）
type VelocityComponent struct {
	VX float64
	VY float64
}

// TweenComponent 补间状态
// Source 为本次过渡开始时捕获的插值起点，Target 为当前帧插值后的目标点
// （弹簧积分器追踪的就是 Target）
type TweenComponent struct {
	SX, SY float64 // 过渡起点
	TX, TY float64 // 当前插值目标
}

// LayoutTargetComponent 布局引擎输出的最新目标点
// 补间调度器在过渡期间把 Tween.Target 从 Source 推向这里
type LayoutTargetComponent struct {
	NX float64
	NY float64
}

// FloatComponent 散点模式下的漂浮参数
// 实体围绕 (BX, BY) 做李萨如式的小幅轨道运动
type FloatComponent struct {
	BX, BY float64 // 漂浮基准点
	Phase  float64 // 初始相位（弧度）
	Radius float64 // 轨道半径（像素）
	Speed  float64 // 角速度（弧度/秒）
}

// PersonComponent 人群中的一个成员
//
// Group 和 Color 在创建后不再改变；其余字段每帧由各系统原地修改。
// 分组只是一个标签，实体始终只属于 EntityStore 的单一集合。
type PersonComponent struct {
	Group string
	Color color.RGBA

	Position PositionComponent
	Velocity VelocityComponent
	Tween    TweenComponent
	Next     LayoutTargetComponent
	Float    FloatComponent
}

// PlaceAt 把实体的所有位置相关字段对齐到同一点，速度归零
// 用于初始化：让第一次过渡从静止状态开始
func (p *PersonComponent) PlaceAt(x, y float64) {
	p.Position = PositionComponent{X: x, Y: y}
	p.Velocity = VelocityComponent{}
	p.Tween = TweenComponent{SX: x, SY: y, TX: x, TY: y}
	p.Next = LayoutTargetComponent{NX: x, NY: y}
	p.Float.BX = x
	p.Float.BY = y
}
