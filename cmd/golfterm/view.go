package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/playmatatu/golf/internal/golf"
)

// viewport maps stage coordinates onto terminal cells. A cell is roughly
// twice as tall as it is wide, so the vertical scale is half the horizontal.
type viewport struct {
	scaleX, scaleY float64
	offX, offY     int
	width, height  int
}

// fitViewport picks the largest scale at which dim fits in cols x rows and
// centers the stage horizontally.
func fitViewport(dim golf.Vec2, cols, rows int) viewport {
	if cols < 1 || rows < 1 || dim.X <= 0 || dim.Y <= 0 {
		return viewport{}
	}
	s := math.Min(float64(cols)/dim.X, 2*float64(rows)/dim.Y)
	v := viewport{
		scaleX: s,
		scaleY: s / 2,
		width:  max(1, int(dim.X*s)),
		height: max(1, int(dim.Y*s/2)),
	}
	v.offX = (cols - v.width) / 2
	return v
}

func (v viewport) cell(p golf.Vec2) (int, int) {
	x := min(max(int(math.Floor(p.X*v.scaleX)), 0), v.width-1)
	y := min(max(int(math.Floor(p.Y*v.scaleY)), 0), v.height-1)
	return v.offX + x, v.offY + y
}

// rasterLine plots every cell on the segment from a to b.
func (v viewport) rasterLine(a, b golf.Vec2, plot func(x, y int)) {
	x0, y0 := v.cell(a)
	x1, y1 := v.cell(b)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var (
	styleDefault = tcell.StyleDefault
	styleBall    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFlag    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleAim     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// materialCell is how an edge of each material is drawn.
func materialCell(m golf.Material) (rune, tcell.Style) {
	switch m {
	case golf.Slippery:
		return '=', tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	case golf.Bouncy:
		return '*', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	case golf.Sand:
		return ':', tcell.StyleDefault.Foreground(tcell.ColorKhaki)
	case golf.Hole:
		return 'U', tcell.StyleDefault.Foreground(tcell.ColorWhite)
	case golf.Green:
		return '#', tcell.StyleDefault.Foreground(tcell.ColorLime)
	case golf.Sticky:
		return '%', tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case golf.Water:
		return '~', tcell.StyleDefault.Foreground(tcell.ColorBlue)
	}
	return '#', tcell.StyleDefault.Foreground(tcell.ColorGreen)
}

// meterBar renders power on a fixed-width gauge.
func meterBar(power float64, width int) string {
	filled := int(math.Round((power - 1) / 10 * float64(width)))
	filled = min(max(filled, 0), width)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '|'
		} else {
			bar[i] = ' '
		}
	}
	return string(bar)
}
