package main

import (
	"testing"

	"github.com/playmatatu/golf/internal/golf"
)

func TestFitViewport(t *testing.T) {
	v := fitViewport(golf.Vec2{X: 600, Y: 600}, 80, 23)

	if v.height != 23 {
		t.Errorf("height = %d, want 23", v.height)
	}
	if v.width != 46 {
		t.Errorf("width = %d, want 46", v.width)
	}
	if v.offX != 17 {
		t.Errorf("offX = %d, want 17", v.offX)
	}

	x, y := v.cell(golf.Vec2{})
	if x != 17 || y != 0 {
		t.Errorf("origin maps to (%d,%d), want (17,0)", x, y)
	}
	x, y = v.cell(golf.Vec2{X: 600, Y: 600})
	if x != 17+45 || y != 22 {
		t.Errorf("far corner maps to (%d,%d), want (62,22)", x, y)
	}
}

func TestFitViewportWideStage(t *testing.T) {
	v := fitViewport(golf.Vec2{X: 800, Y: 100}, 80, 40)
	if v.width != 80 || v.offX != 0 {
		t.Errorf("wide stage should fill the width, got width %d offset %d", v.width, v.offX)
	}
	if v.height != 5 {
		t.Errorf("height = %d, want 5", v.height)
	}
}

func TestFitViewportEmpty(t *testing.T) {
	v := fitViewport(golf.Vec2{X: 600, Y: 600}, 0, 0)
	if v.width != 0 || v.height != 0 {
		t.Errorf("expected empty viewport, got %+v", v)
	}
}

func TestRasterLine(t *testing.T) {
	v := fitViewport(golf.Vec2{X: 600, Y: 600}, 80, 23)

	seen := map[[2]int]bool{}
	v.rasterLine(golf.Vec2{X: 0, Y: 0}, golf.Vec2{X: 600, Y: 0}, func(x, y int) {
		if y != 0 {
			t.Errorf("horizontal line plotted row %d", y)
		}
		seen[[2]int{x, y}] = true
	})
	if len(seen) != v.width {
		t.Errorf("plotted %d cells, want %d", len(seen), v.width)
	}

	var cells [][2]int
	v.rasterLine(golf.Vec2{X: 0, Y: 0}, golf.Vec2{X: 600, Y: 600}, func(x, y int) {
		cells = append(cells, [2]int{x, y})
	})
	for i := 1; i < len(cells); i++ {
		dx := cells[i][0] - cells[i-1][0]
		dy := cells[i][1] - cells[i-1][1]
		if abs(dx) > 1 || abs(dy) > 1 {
			t.Fatalf("gap between %v and %v", cells[i-1], cells[i])
		}
	}
}

func TestMeterBar(t *testing.T) {
	tests := []struct {
		power float64
		want  string
	}{
		{1, "          "},
		{6, "|||||     "},
		{11, "||||||||||"},
		{20, "||||||||||"},
	}
	for _, tt := range tests {
		if got := meterBar(tt.power, 10); got != tt.want {
			t.Errorf("meterBar(%v) = %q, want %q", tt.power, got, tt.want)
		}
	}
}
