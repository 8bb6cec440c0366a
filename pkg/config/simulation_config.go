package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/decker502/crowdflow/pkg/embedded"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// SimulationConfig 人群模拟配置
//
// 包含人口构成（分组、人数、颜色）以及运动核心的可调常量。
//
// 配置文件位置: data/population.yaml（默认嵌入到二进制中）
type SimulationConfig struct {
	// Seed 随机种子，用于散点位置和漂浮参数；0 表示使用当前时间
	Seed uint64 `yaml:"seed" toml:"seed"`

	// Groups 人口分组，顺序即分组布局与条形布局中的排列顺序
	Groups []GroupConfig `yaml:"groups" toml:"groups"`

	// Tween 补间配置
	Tween TweenConfig `yaml:"tween" toml:"tween"`

	// Motion 弹簧积分器配置
	Motion MotionConfig `yaml:"motion" toml:"motion"`

	// Collision 碰撞求解配置
	Collision CollisionConfig `yaml:"collision" toml:"collision"`

	// Float 散点漂浮参数的随机范围
	Float FloatConfig `yaml:"float" toml:"float"`

	// Bounds 每帧结束时的边界内缩
	Bounds BoundsConfig `yaml:"bounds" toml:"bounds"`
}

// GroupConfig 一个人口分组
type GroupConfig struct {
	// Key 分组标签（如 "A"）
	Key string `yaml:"key" toml:"key"`

	// Count 分组人数
	Count int `yaml:"count" toml:"count"`

	// Color 十六进制颜色（如 "#ff6666"）
	Color string `yaml:"color" toml:"color"`
}

// TweenConfig 补间配置
type TweenConfig struct {
	// DurationMs 过渡时长（与帧时间戳同单位，毫秒）
	DurationMs float64 `yaml:"durationMs" toml:"durationMs"`
}

// MotionConfig 弹簧-阻尼配置
type MotionConfig struct {
	// Attraction 每帧朝目标点的吸引系数
	Attraction float64 `yaml:"attraction" toml:"attraction"`

	// Damping 每帧速度衰减系数
	Damping float64 `yaml:"damping" toml:"damping"`
}

// CollisionConfig 碰撞配置
type CollisionConfig struct {
	// MinDistance 两个人形图标中心之间的最小距离
	MinDistance float64 `yaml:"minDistance" toml:"minDistance"`
}

// FloatConfig 漂浮参数范围
type FloatConfig struct {
	RadiusMin float64 `yaml:"radiusMin" toml:"radiusMin"`
	RadiusMax float64 `yaml:"radiusMax" toml:"radiusMax"`
	SpeedMin  float64 `yaml:"speedMin" toml:"speedMin"`
	SpeedMax  float64 `yaml:"speedMax" toml:"speedMax"`
}

// BoundsConfig 边界内缩（上下不对称，给人形头部留出空间）
type BoundsConfig struct {
	Left   float64 `yaml:"left" toml:"left"`
	Right  float64 `yaml:"right" toml:"right"`
	Top    float64 `yaml:"top" toml:"top"`
	Bottom float64 `yaml:"bottom" toml:"bottom"`
}

// DefaultSimulationConfig 返回默认配置
// 与 data/population.yaml 的内容一致，在没有配置文件时使用
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Groups: []GroupConfig{
			{Key: "A", Count: 120, Color: "#ff6666"},
			{Key: "B", Count: 110, Color: "#cc0000"},
			{Key: "C", Count: 100, Color: "#990000"},
			{Key: "D", Count: 90, Color: "#d5d6ff"},
			{Key: "E", Count: 80, Color: "#988fec"},
			{Key: "F", Count: 70, Color: "#5c48d9"},
		},
		Tween:     TweenConfig{DurationMs: 900},
		Motion:    MotionConfig{Attraction: 0.045, Damping: 0.90},
		Collision: CollisionConfig{MinDistance: 11},
		Float:     FloatConfig{RadiusMin: 4, RadiusMax: 14, SpeedMin: 0.6, SpeedMax: 2.0},
		Bounds:    BoundsConfig{Left: 8, Right: 8, Top: 12, Bottom: 6},
	}
}

// LoadSimulationConfig 从文件加载模拟配置
//
// 根据扩展名选择解析器：.yaml/.yml 使用 YAML，.toml 使用 TOML。
// 文件中未出现的字段保持默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/population.yaml"）
//
// 返回:
//   - *SimulationConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseSimulationConfig(data, format)
}

// ParseSimulationConfig 解析内存中的配置数据
//
// 参数:
//   - data: 配置文件内容
//   - format: "yaml"、"yml" 或 "toml"
//
// 返回:
//   - *SimulationConfig: 解析并验证后的配置
//   - error: 格式未知、解析失败或验证失败时返回错误
func ParseSimulationConfig(data []byte, format string) (*SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	// 分组整体替换，不与默认分组合并
	cfg.Groups = nil

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse simulation config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse simulation config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want yaml or toml)", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 至少一个分组，标签唯一且非空，人数非负，颜色可解析
//   - 补间时长为正
//   - 吸引系数为正，阻尼在 (0, 1) 内（否则弹簧会发散）
//   - 最小间距为正
//   - 漂浮范围 Min <= Max 且非负
//   - 边界内缩非负
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *SimulationConfig) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("groups: at least one group is required")
	}

	seen := make(map[string]bool, len(c.Groups))
	for i, g := range c.Groups {
		if g.Key == "" {
			return fmt.Errorf("groups[%d]: key is empty", i)
		}
		if seen[g.Key] {
			return fmt.Errorf("groups[%d]: duplicate key '%s'", i, g.Key)
		}
		seen[g.Key] = true
		if g.Count < 0 {
			return fmt.Errorf("groups[%d]: count for '%s' should be >= 0, got %d", i, g.Key, g.Count)
		}
		if _, err := ParseColor(g.Color); err != nil {
			return fmt.Errorf("groups[%d]: %w", i, err)
		}
	}

	if !(c.Tween.DurationMs > 0) {
		return fmt.Errorf("tween.durationMs should be > 0, got %.1f", c.Tween.DurationMs)
	}
	if !(c.Motion.Attraction > 0) {
		return fmt.Errorf("motion.attraction should be > 0, got %.3f", c.Motion.Attraction)
	}
	if !(c.Motion.Damping > 0 && c.Motion.Damping < 1) {
		return fmt.Errorf("motion.damping should be in (0, 1), got %.3f", c.Motion.Damping)
	}
	if !(c.Collision.MinDistance > 0) {
		return fmt.Errorf("collision.minDistance should be > 0, got %.1f", c.Collision.MinDistance)
	}

	if c.Float.RadiusMin < 0 || c.Float.RadiusMin > c.Float.RadiusMax {
		return fmt.Errorf("float radius range invalid: min(%.1f) > max(%.1f)",
			c.Float.RadiusMin, c.Float.RadiusMax)
	}
	if c.Float.SpeedMin < 0 || c.Float.SpeedMin > c.Float.SpeedMax {
		return fmt.Errorf("float speed range invalid: min(%.1f) > max(%.1f)",
			c.Float.SpeedMin, c.Float.SpeedMax)
	}

	if c.Bounds.Left < 0 || c.Bounds.Right < 0 || c.Bounds.Top < 0 || c.Bounds.Bottom < 0 {
		return fmt.Errorf("bounds insets should be >= 0, got %+v", c.Bounds)
	}
	return nil
}

// Population 返回总人口
func (c *SimulationConfig) Population() int {
	total := 0
	for _, g := range c.Groups {
		total += g.Count
	}
	return total
}

// ParseColor 解析十六进制颜色（"#rrggbb" 或 "#rgb"）
func ParseColor(hex string) (color.RGBA, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: math.MaxUint8}, nil
}

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/population.yaml"

// LoadEmbeddedSimulationConfig 从嵌入资源加载默认配置
//
// embedded 包未初始化（如单元测试或库调用）或未嵌入配置文件时回退到 DefaultSimulationConfig。
func LoadEmbeddedSimulationConfig() (*SimulationConfig, error) {
	if !embedded.Exists(DefaultConfigPath) {
		return DefaultSimulationConfig(), nil
	}
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return ParseSimulationConfig(data, "yaml")
}
