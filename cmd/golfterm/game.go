package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/play"
	"github.com/playmatatu/golf/internal/sound"
)

const rotationStep = 2 * math.Pi / 180

// cues is what the game needs from the audio side.
type cues interface {
	PlayLaunch(power float64)
	PlayScore()
	PlaySplash()
}

type game struct {
	hole    golf.HoleData
	session *play.Session
	clock   *play.FrameClock
	sound   cues

	snap       play.Snapshot
	flags      []golf.FlagPosition
	aim        float64
	meterFrame int
	message    string
	quit       bool
}

func newGame(hole golf.HoleData, physics golf.PhysicsConfig, speed float64, sfx cues) *game {
	g := &game{
		hole:  hole,
		clock: play.NewFrameClock(physics.TickDuration, physics.MaxCatchUpTicks, speed),
		sound: sfx,
		aim:   -math.Pi / 4,
	}
	g.session = play.NewSession("local", 0, hole, physics, g.onEvent)
	g.snap = g.session.Snapshot()
	g.flags = g.snap.Flags
	return g
}

func (g *game) onEvent(e play.Event) {
	switch e.Type {
	case play.EventFrame, play.EventReset:
		if e.Snapshot == nil {
			return
		}
		if e.Snapshot.State == golf.BallSinking.String() && g.snap.State != golf.BallSinking.String() {
			g.sound.PlaySplash()
			g.message = "Splash! One stroke penalty."
		}
		g.snap = *e.Snapshot
		if e.Type == play.EventReset {
			g.meterFrame = 0
			g.message = ""
		}
	case play.EventScored:
		g.sound.PlayScore()
		g.message = fmt.Sprintf("Holed out in %d. Replay: %s", e.Score, e.Replay)
	}
}

// tick runs the physics up to now.
func (g *game) tick(now time.Time) {
	n := g.clock.Advance(now)
	if n <= 0 {
		return
	}
	g.session.Step(n)
	if g.snap.CanLaunch {
		g.meterFrame += n
	}
}

func (g *game) power() float64 {
	return play.MeterPower(g.meterFrame)
}

func (g *game) rotate(dir float64) {
	if g.snap.PuttMode {
		if dir < 0 {
			g.aim = math.Pi
		} else {
			g.aim = 0
		}
		return
	}
	g.aim = math.Mod(g.aim+dir*rotationStep, 2*math.Pi)
}

func (g *game) launch() {
	power := g.power()
	if err := g.session.Launch(g.aim, power); err != nil {
		g.message = err.Error()
		return
	}
	g.sound.PlayLaunch(power)
	g.message = ""
	g.meterFrame = 0
}

func (g *game) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.quit = true
	case tcell.KeyLeft:
		g.rotate(-1)
	case tcell.KeyRight:
		g.rotate(1)
	case tcell.KeyUp:
		g.rotate(-5)
	case tcell.KeyDown:
		g.rotate(5)
	case tcell.KeyEnter:
		g.launch()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			g.launch()
		case 'r', 'R':
			if err := g.session.Reset(); err != nil {
				g.message = err.Error()
			}
		case 'q', 'Q':
			g.quit = true
		}
	}
}

func (g *game) draw(screen tcell.Screen) {
	screen.Clear()
	cols, rows := screen.Size()
	view := fitViewport(g.hole.Dimensions, cols, rows-1)

	put := func(r rune, st tcell.Style) func(x, y int) {
		return func(x, y int) { screen.SetContent(x, y, r, nil, st) }
	}

	d := g.hole.Dimensions
	border := []golf.Vec2{{}, {X: d.X}, d, {Y: d.Y}}
	for i := range border {
		view.rasterLine(border[i], border[(i+1)%len(border)], put('.', styleDefault))
	}
	for _, obj := range g.hole.CollisionObjects {
		for i, m := range obj.Segments {
			r, st := materialCell(m)
			view.rasterLine(obj.Points[i], obj.Points[(i+1)%len(obj.Points)], put(r, st))
		}
	}
	for _, f := range g.flags {
		x, y := view.cell(f.Root)
		screen.SetContent(x, y-1, 'P', nil, styleFlag)
	}

	if g.snap.CanLaunch {
		reach := g.power() * 6
		for step := 1.0; step <= reach; step += 3 {
			x, y := view.cell(g.snap.Position.Plus(golf.FromAngle(g.aim, step)))
			screen.SetContent(x, y, '.', nil, styleAim)
		}
	}
	x, y := view.cell(g.snap.Position)
	screen.SetContent(x, y, 'o', nil, styleBall)

	status := fmt.Sprintf(" Strokes %d  Power [%s] %4.1f", g.snap.Score, meterBar(g.power(), 20), g.power())
	if g.snap.PuttMode {
		status += "  PUTT"
	}
	status += "  <-/-> aim  space shoot  r reset  q quit"
	if g.message != "" {
		status = " " + g.message
	}
	drawText(screen, 0, rows-1, cols, status, styleStatus)
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, text string, st tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+width {
			return
		}
		screen.SetContent(col, y, r, nil, st)
		col++
	}
	for ; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, st)
	}
}

var _ cues = (*sound.Player)(nil)
