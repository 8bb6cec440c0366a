package config

// 布局配置常量
// 本文件定义了四种布局的几何参数以及帧驱动的边界内缩
// 所有坐标使用逻辑像素，原点为视口左上角

// Scatter 散点布局
const (
	// ScatterPadding 散点基准点距视口边缘的最小距离
	ScatterPadding = 24.0
)

// Grouped 分组布局
const (
	// GroupedColumns 分组网格的列数（6 组正好排成 3x2）
	GroupedColumns = 3

	// GroupedSpiralSpacing 螺旋排布的间距系数：第 i 个成员的半径为 spacing*sqrt(i)
	GroupedSpiralSpacing = 10.0

	// GroupedSpiralAngleStep 相邻成员之间的角度增量（弧度）
	GroupedSpiralAngleStep = 0.60
)

// 组内稳定洗牌使用的线性同余参数
// key = (i*ShuffleMultiplier + ShuffleIncrement) % ShuffleModulus
const (
	ShuffleMultiplier = 9301
	ShuffleIncrement  = 49297
	ShuffleModulus    = 233280
)

// Stacked 堆叠布局
const (
	// StackedColumnsPerGroup 每个组方块的列数
	StackedColumnsPerGroup = 12

	// StackedCell 单个格子的边长
	StackedCell = 12.0

	// StackedGap 格子之间的间距
	StackedGap = 2.0

	// StackedGroupGap 组方块之间的间距
	StackedGroupGap = 42.0

	// StackedSideMargin 居中时保留的最小左边距
	StackedSideMargin = 24.0

	// StackedBaselineOffset 底部基线距视口底边的距离
	StackedBaselineOffset = 60.0
)

// NormalizedBar 100% 条形布局
const (
	// BarColumns 条形的列数
	BarColumns = 30

	// BarCell 单个格子的边长
	BarCell = 12.0

	// BarGap 格子之间的间距
	BarGap = 2.0

	// BarMarginBottom 条形距视口底边的距离
	BarMarginBottom = 24.0

	// BarMarginSide 条形左右两侧的最小边距
	BarMarginSide = 32.0
)

// Frame 帧驱动
const (
	// FloatTimeScale 漂浮扰动的时间单位换算：now（毫秒）/ 1000 = 秒
	FloatTimeScale = 1000.0

	// FloatYFrequencyRatio Y 方向相对 X 方向的频率比，形成李萨如轨道
	FloatYFrequencyRatio = 0.9
)

// StackedBlockWidth 返回单个堆叠组方块的宽度
func StackedBlockWidth() float64 {
	return StackedColumnsPerGroup*(StackedCell+StackedGap) - StackedGap
}

// BarWidth 返回 100% 条形的宽度
func BarWidth() float64 {
	return BarColumns*(BarCell+BarGap) - BarGap
}
