package utils

import (
	"math"
	"testing"
)

func TestWorldToGridCell(t *testing.T) {
	tests := []struct {
		name       string
		wx, wy     float64
		wantX      int
		wantY      int
		wantResult bool
	}{
		{"整数坐标", 45, 45, 45, 45, true},
		{"小数向下取整", 45.9, 12.1, 45, 12, true},
		{"原点", 0, 0, 0, 0, true},
		{"负小数向下取整", -0.5, -1.2, -1, -2, true},
		{"NaN", math.NaN(), 3, 0, 0, false},
		{"正无穷", math.Inf(1), 3, 0, 0, false},
		{"负无穷", 3, math.Inf(-1), 0, 0, false},
		{"超出范围", 1e20, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := WorldToGridCell(tt.wx, tt.wy)
			if ok != tt.wantResult {
				t.Fatalf("WorldToGridCell(%v, %v) ok = %v, want %v", tt.wx, tt.wy, ok, tt.wantResult)
			}
			if ok && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("WorldToGridCell(%v, %v) = (%d, %d), want (%d, %d)",
					tt.wx, tt.wy, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestGridCellToWorldRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {45, 45}, {99, 0}, {7, 93}} {
		wx, wy := GridCellCenter(c[0], c[1])
		x, y, ok := WorldToGridCell(wx, wy)
		if !ok || x != c[0] || y != c[1] {
			t.Errorf("center of (%d,%d) maps back to (%d,%d) ok=%v", c[0], c[1], x, y, ok)
		}

		wx, wy = GridCellToWorld(c[0], c[1])
		x, y, _ = WorldToGridCell(wx, wy)
		if x != c[0] || y != c[1] {
			t.Errorf("corner of (%d,%d) maps back to (%d,%d)", c[0], c[1], x, y)
		}
	}
}
