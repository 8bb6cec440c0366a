package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/crowdflow/pkg/embedded"
)

func TestParseSimulationConfig(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		content     string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SimulationConfig)
	}{
		{
			name:   "valid yaml",
			format: "yaml",
			content: `
seed: 7
groups:
  - key: A
    count: 3
    color: "#ff6666"
  - key: B
    count: 2
    color: "#00f"
collision:
  minDistance: 9
`,
			validate: func(t *testing.T, cfg *SimulationConfig) {
				if cfg.Seed != 7 {
					t.Errorf("expected seed = 7, got %d", cfg.Seed)
				}
				if len(cfg.Groups) != 2 {
					t.Fatalf("expected 2 groups, got %d", len(cfg.Groups))
				}
				if cfg.Population() != 5 {
					t.Errorf("expected population = 5, got %d", cfg.Population())
				}
				if cfg.Collision.MinDistance != 9 {
					t.Errorf("expected minDistance = 9, got %f", cfg.Collision.MinDistance)
				}
				// 未出现的字段保持默认值
				if cfg.Tween.DurationMs != 900 {
					t.Errorf("expected default durationMs = 900, got %f", cfg.Tween.DurationMs)
				}
				if cfg.Motion.Damping != 0.90 {
					t.Errorf("expected default damping = 0.90, got %f", cfg.Motion.Damping)
				}
			},
		},
		{
			name:   "valid toml",
			format: "toml",
			content: `
seed = 3

[[groups]]
key = "X"
count = 4
color = "#123456"

[motion]
attraction = 0.05
damping = 0.8
`,
			validate: func(t *testing.T, cfg *SimulationConfig) {
				if len(cfg.Groups) != 1 || cfg.Groups[0].Key != "X" || cfg.Groups[0].Count != 4 {
					t.Errorf("unexpected groups: %+v", cfg.Groups)
				}
				if cfg.Motion.Attraction != 0.05 || cfg.Motion.Damping != 0.8 {
					t.Errorf("unexpected motion: %+v", cfg.Motion)
				}
			},
		},
		{
			name:        "no groups",
			format:      "yaml",
			content:     "seed: 1\n",
			wantErr:     true,
			errContains: "at least one group",
		},
		{
			name:   "duplicate key",
			format: "yaml",
			content: `
groups:
  - {key: A, count: 1, color: "#ffffff"}
  - {key: A, count: 1, color: "#000000"}
`,
			wantErr:     true,
			errContains: "duplicate key",
		},
		{
			name:   "bad color",
			format: "yaml",
			content: `
groups:
  - {key: A, count: 1, color: "red"}
`,
			wantErr:     true,
			errContains: "invalid color",
		},
		{
			name:   "diverging damping",
			format: "yaml",
			content: `
groups:
  - {key: A, count: 1, color: "#ffffff"}
motion:
  damping: 1.2
`,
			wantErr:     true,
			errContains: "damping",
		},
		{
			name:   "inverted float range",
			format: "yaml",
			content: `
groups:
  - {key: A, count: 1, color: "#ffffff"}
float:
  radiusMin: 10
  radiusMax: 2
`,
			wantErr:     true,
			errContains: "float radius range",
		},
		{
			name:        "unknown format",
			format:      "json",
			content:     "{}",
			wantErr:     true,
			errContains: "unsupported config format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSimulationConfig([]byte(tt.content), tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSimulationConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crowd.yml")
	content := "groups:\n  - {key: A, count: 2, color: \"#ff0000\"}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadSimulationConfig(path)
	if err != nil {
		t.Fatalf("LoadSimulationConfig() error: %v", err)
	}
	if cfg.Population() != 2 {
		t.Errorf("expected population = 2, got %d", cfg.Population())
	}

	if _, err := LoadSimulationConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestDefaultConfigMatchesDataFile 默认配置与仓库中的 data/population.yaml 保持一致
func TestDefaultConfigMatchesDataFile(t *testing.T) {
	cfg, err := LoadSimulationConfig(filepath.Join("..", "..", "data", "population.yaml"))
	if err != nil {
		t.Fatalf("failed to load data/population.yaml: %v", err)
	}
	def := DefaultSimulationConfig()

	if len(cfg.Groups) != len(def.Groups) {
		t.Fatalf("group count mismatch: file %d, default %d", len(cfg.Groups), len(def.Groups))
	}
	for i := range def.Groups {
		if cfg.Groups[i] != def.Groups[i] {
			t.Errorf("groups[%d]: file %+v, default %+v", i, cfg.Groups[i], def.Groups[i])
		}
	}
	if cfg.Population() != 570 {
		t.Errorf("expected population = 570, got %d", cfg.Population())
	}
	if cfg.Tween != def.Tween || cfg.Motion != def.Motion || cfg.Collision != def.Collision ||
		cfg.Float != def.Float || cfg.Bounds != def.Bounds {
		t.Errorf("constants mismatch between file and default: %+v vs %+v", cfg, def)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff6666", color.RGBA{R: 0xff, G: 0x66, B: 0x66, A: 0xff}, false},
		{"#5c48d9", color.RGBA{R: 0x5c, G: 0x48, B: 0xd9, A: 0xff}, false},
		{"#0f0", color.RGBA{G: 0xff, A: 0xff}, false},
		{"ff6666", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestLayoutWidths(t *testing.T) {
	if StackedBlockWidth() != 166 {
		t.Errorf("StackedBlockWidth() = %v, want 166", StackedBlockWidth())
	}
	if BarWidth() != 418 {
		t.Errorf("BarWidth() = %v, want 418", BarWidth())
	}
}

// TestLoadEmbeddedSimulationConfig 测试嵌入配置的加载与回退
func TestLoadEmbeddedSimulationConfig(t *testing.T) {
	defer embedded.Init(nil)

	t.Run("未初始化时回退到默认配置", func(t *testing.T) {
		embedded.Init(nil)
		cfg, err := LoadEmbeddedSimulationConfig()
		if err != nil {
			t.Fatalf("LoadEmbeddedSimulationConfig() error = %v", err)
		}
		if cfg.Population() != 570 {
			t.Errorf("Population() = %d, 期望 570", cfg.Population())
		}
	})

	t.Run("读取嵌入文件", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			DefaultConfigPath: &fstest.MapFile{Data: []byte("groups:\n  - key: Z\n    count: 4\n    color: \"#abcdef\"\n")},
		})
		cfg, err := LoadEmbeddedSimulationConfig()
		if err != nil {
			t.Fatalf("LoadEmbeddedSimulationConfig() error = %v", err)
		}
		if len(cfg.Groups) != 1 || cfg.Groups[0].Key != "Z" || cfg.Population() != 4 {
			t.Errorf("Groups = %+v", cfg.Groups)
		}
	})

	t.Run("嵌入文件无效时返回错误", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			DefaultConfigPath: &fstest.MapFile{Data: []byte("groups: []\n")},
		})
		if _, err := LoadEmbeddedSimulationConfig(); err == nil {
			t.Error("空分组应当验证失败")
		}
	})
}
