// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "math"

// LayoutID 定义人群布局的类型
// 取值是一个封闭枚举，顺序与滚动步骤（step index）一一对应
type LayoutID int

const (
	// LayoutScatter 自由漂浮散点（初始布局）
	LayoutScatter LayoutID = iota
	// LayoutGrouped 按分组聚成螺旋团簇
	LayoutGrouped
	// LayoutStacked 每组一个从底部堆叠的方块
	LayoutStacked
	// LayoutNormalizedBar 所有人按组顺序排成一条 100% 条形
	LayoutNormalizedBar

	layoutCount
)

// UnknownLayoutLabel 未知布局的显示文本
const UnknownLayoutLabel = "—"

// AllLayouts 返回全部布局，顺序即步骤顺序
func AllLayouts() []LayoutID {
	return []LayoutID{LayoutScatter, LayoutGrouped, LayoutStacked, LayoutNormalizedBar}
}

// Valid 判断布局是否属于枚举范围
func (l LayoutID) Valid() bool {
	return l >= LayoutScatter && l < layoutCount
}

// Label 返回用于状态栏显示的一行文本
func (l LayoutID) Label() string {
	switch l {
	case LayoutScatter:
		return "Scatter (Floating)"
	case LayoutGrouped:
		return "Grouped"
	case LayoutStacked:
		return "Stacks"
	case LayoutNormalizedBar:
		return "100% Bar"
	default:
		return UnknownLayoutLabel
	}
}

// String 返回布局的简短英文名（用于日志和命令行参数）
func (l LayoutID) String() string {
	switch l {
	case LayoutScatter:
		return "scatter"
	case LayoutGrouped:
		return "grouped"
	case LayoutStacked:
		return "stacked"
	case LayoutNormalizedBar:
		return "bar"
	default:
		return "unknown"
	}
}

// ParseLayout 根据名称解析布局，名称与 String() 的结果一致
func ParseLayout(name string) (LayoutID, bool) {
	for _, l := range AllLayouts() {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}

// LayoutFromStep 将外部步骤观察器给出的步骤编号转换为布局
//
// 步骤编号来自页面数据（可能是任意数字），只有有限的整数且落在枚举范围内才被接受。
//
// 返回:
//   - LayoutID: 对应的布局
//   - bool: 步骤编号无效（NaN、Inf、非整数、越界）时返回 false
func LayoutFromStep(step float64) (LayoutID, bool) {
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return 0, false
	}
	if step != math.Trunc(step) {
		return 0, false
	}
	if step < 0 || step >= float64(layoutCount) {
		return 0, false
	}
	return LayoutID(int(step)), true
}
