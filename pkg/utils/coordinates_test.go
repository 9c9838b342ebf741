package utils

import (
	"math"
	"testing"
)

func TestPointerToCanvas(t *testing.T) {
	tests := []struct {
		name    string
		cx, cy  float64
		rect    Rect
		surface Size
		wantX   float64
		wantY   float64
		wantOK  bool
	}{
		{"identity", 400, 300, Rect{Width: 800, Height: 600}, Size{800, 600}, 400, 300, true},
		{"dpr 2", 100, 50, Rect{Width: 400, Height: 300}, SurfaceForViewport(400, 300, 2), 200, 100, true},
		{"offset origin", 60, 70, Rect{X: 10, Y: 20, Width: 100, Height: 100}, Size{200, 100}, 100, 50, true},
		{"letterboxed view scaled down", 250, 150, Rect{X: 50, Width: 400, Height: 300}, Size{800, 600}, 400, 300, true},
		{"outside rect maps outside surface", 0, 0, Rect{X: 10, Y: 10, Width: 100, Height: 100}, Size{100, 100}, -10, -10, true},
		{"zero width rect", 10, 10, Rect{Width: 0, Height: 100}, Size{100, 100}, 0, 0, false},
		{"zero height rect", 10, 10, Rect{Width: 100, Height: 0}, Size{100, 100}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := PointerToCanvas(tt.cx, tt.cy, tt.rect, tt.surface)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("PointerToCanvas = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSurfaceForViewport(t *testing.T) {
	tests := []struct {
		w, h, dpr float64
		want      Size
	}{
		{800, 600, 1, Size{800, 600}},
		{400, 300, 2, Size{800, 600}},
		{401, 301, 1.5, Size{601, 451}},
		{800, 600, 0, Size{800, 600}},
		{-5, 10, 1, Size{0, 10}},
	}
	for _, tt := range tests {
		if got := SurfaceForViewport(tt.w, tt.h, tt.dpr); got != tt.want {
			t.Errorf("SurfaceForViewport(%v, %v, %v) = %+v, want %+v", tt.w, tt.h, tt.dpr, got, tt.want)
		}
	}
}
