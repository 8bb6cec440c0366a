package components

import (
	"math"
	"testing"
)

func TestNewViewportNormalizes(t *testing.T) {
	tests := []struct {
		name                string
		w, h, dpr           float64
		wantW, wantH, wantD float64
	}{
		{"正常尺寸", 800.7, 600.2, 2, 800, 600, 2},
		{"零尺寸", 0, 0, 0, 1, 1, 1},
		{"负尺寸", -20, -5, -1, 1, 1, 1},
		{"NaN", math.NaN(), math.Inf(1), math.NaN(), 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(tt.w, tt.h, tt.dpr)
			if v.Width != tt.wantW || v.Height != tt.wantH || v.PixelDensity != tt.wantD {
				t.Errorf("NewViewport(%v, %v, %v) = %+v", tt.w, tt.h, tt.dpr, v)
			}
		})
	}
}

func TestViewportInsetCollapses(t *testing.T) {
	v := NewViewport(10, 400, 1)
	minX, maxX, minY, maxY := v.Inset(8, 8, 12, 6)
	if minX != 5 || maxX != 5 {
		t.Errorf("窄视口的 X 区间应塌缩到中心 5，实际 [%v, %v]", minX, maxX)
	}
	if minY != 12 || maxY != 394 {
		t.Errorf("Y 区间 = [%v, %v]，期望 [12, 394]", minY, maxY)
	}
}
