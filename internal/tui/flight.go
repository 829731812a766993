// Package tui is the interactive cockpit: a Braille canvas on the left,
// live readouts on the right, flown from the keyboard.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/config"
	"github.com/san-kum/apogee/internal/flight"
	"github.com/san-kum/apogee/internal/vessel"
)

const (
	canvasWidth  = 72
	canvasHeight = 22
	frameRate    = 25
	// Two ticks per frame at 25 fps matches wall time at warp 1.
	stepsPerFrame = 2
	trailCap      = 600
	historyCap    = 400
)

type TickMsg time.Time

// Model drives one flight. The craft builder is kept so R can put a
// fresh vehicle back on the pad.
type Model struct {
	cfg   *config.Config
	name  string
	build func() []*vessel.Part

	sim    *flight.Sim
	input  flight.Input
	stage  bool
	deploy bool
	turn   float64

	canvas   *Canvas
	trail    []astro.Vec2
	altHist  []float64
	mapView  bool
	zoom     float64
	paused   bool
	showHelp bool
	err      error
}

func NewModel(cfg *config.Config, name string, build func() []*vessel.Part) (Model, error) {
	s, err := flight.New(cfg, build())
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:    cfg,
		name:   name,
		build:  build,
		sim:    s,
		input:  flight.Input{Warp: 1},
		canvas: NewCanvas(canvasWidth, canvasHeight),
		zoom:   1,
	}, nil
}

// Run opens the cockpit and blocks until the pilot quits.
func Run(cfg *config.Config, name string, build func() []*vessel.Part) error {
	m, err := NewModel(cfg, name, build)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.stage = true
		case "p":
			m.deploy = true
		case "z":
			m.input.Throttle = 1
		case "x":
			m.input.Throttle = 0
		case "up":
			m.input.Throttle = math.Min(1, m.input.Throttle+0.1)
		case "down":
			m.input.Throttle = math.Max(0, m.input.Throttle-0.1)
		case "left":
			m.turn = -1
		case "right":
			m.turn = 1
		case "1":
			m.input.Mode = flight.ModeManual
		case "2":
			m.input.Mode = flight.ModeStability
		case "3":
			m.input.Mode = flight.ModePrograde
		case "4":
			m.input.Mode = flight.ModeRetrograde
		case ",":
			m.input.Warp = math.Max(1, m.input.Warp/2)
		case ".":
			m.input.Warp = math.Min(m.cfg.Flight.MaxTimeWarp, m.input.Warp*2)
		case "m":
			m.mapView = !m.mapView
		case "+", "=":
			m.zoom = math.Min(50, m.zoom*1.5)
		case "-", "_":
			m.zoom = math.Max(0.2, m.zoom/1.5)
		case "tab":
			m.paused = !m.paused
		case "r":
			m.restart()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if !m.paused && m.err == nil && m.sim.State().Status == flight.StatusFlying {
			for i := 0; i < stepsPerFrame; i++ {
				in := m.input
				in.Turn = m.turn
				in.Stage = m.stage && i == 0
				in.Deploy = m.deploy && i == 0
				if err := m.sim.Step(in); err != nil {
					m.err = err
					break
				}
			}
			m.stage, m.deploy = false, false
			m.turn = 0

			st := m.sim.State()
			m.trail = append(m.trail, st.Pos)
			if len(m.trail) > trailCap {
				m.trail = m.trail[1:]
			}
			m.altHist = append(m.altHist, st.Altitude)
			if len(m.altHist) > historyCap {
				m.altHist = m.altHist[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) restart() {
	s, err := flight.New(m.cfg, m.build())
	if err != nil {
		m.err = err
		return
	}
	m.sim = s
	m.err = nil
	m.input = flight.Input{Warp: 1}
	m.stage, m.deploy, m.turn = false, false, 0
	m.trail = m.trail[:0]
	m.altHist = m.altHist[:0]
	m.paused = false
}

func (m Model) View() string {
	st := m.sim.State()
	m.canvas.Clear()
	if m.mapView {
		m.drawMap(st)
	} else {
		m.drawFlight(st)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(m.statsView(st)),
	)
	footer := helpStyle.Render("SPACE:stage  P:chutes  Z/X ↑↓:throttle  ←→:turn  1-4:hold  ,/.:warp  M:map  +/-:zoom  TAB:pause  R:restart  ?:help  Q:quit")

	if m.showHelp {
		return helpOverlay + "\n" + main + "\n" + footer
	}
	return main + "\n" + footer
}

func (m Model) statusBadge(st *flight.State) string {
	if m.err != nil {
		return crashedStyle.Render("FAILED")
	}
	switch st.Status {
	case flight.StatusLanded:
		return landedStyle.Render("LANDED")
	case flight.StatusCrashed:
		return crashedStyle.Render("CRASHED")
	case flight.StatusFailed:
		return crashedStyle.Render("FAILED")
	}
	if m.paused {
		return pausedStyle.Render("PAUSED")
	}
	return flyingStyle.Render("FLYING")
}

func (m Model) statsView(st *flight.State) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + " " + m.statusBadge(st) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", "T+"+fmtClock(st.Time))
	row("Body", st.Body)
	row("Altitude", fmtDist(st.Altitude))
	row("Speed", fmt.Sprintf("%.1f m/s", st.Speed))
	row("Vertical", fmt.Sprintf("%+.1f m/s", st.VerticalSpeed))
	row("Horizontal", fmt.Sprintf("%.1f m/s", st.HorizontalSpeed))
	row("Apoapsis", fmtDist(st.Elements.Apoapsis))
	row("Periapsis", fmtDist(st.Elements.Periapsis))
	if st.Elements.Bound() {
		row("Period", fmtClock(st.Elements.Period))
	}
	row("Mass", fmt.Sprintf("%.0f kg", st.Mass))
	s.WriteString("\n")

	fuelFrac := 0.0
	if st.FuelCap > 0 {
		fuelFrac = st.Fuel / st.FuelCap
	}
	row("Fuel", fmt.Sprintf("%s %.0f kg", bar(fuelFrac, 10), st.Fuel))
	row("Throttle", fmt.Sprintf("%s %3.0f%%", bar(st.Throttle, 10), st.Throttle*100))
	row("Hold", st.Mode.String())
	row("Warp", fmt.Sprintf("x%.0f", st.Warp))

	if len(m.altHist) > 1 {
		chart := asciigraph.Plot(m.altHist,
			asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("altitude"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if n := len(st.Events); n > 0 {
		s.WriteString("\n")
		start := n - 6
		if start < 0 {
			start = 0
		}
		for _, e := range st.Events[start:] {
			s.WriteString(eventStyle.Render(e) + "\n")
		}
	}
	return s.String()
}

// drawFlight is the near-craft attitude view: nose, thrust plume,
// velocity marker and, close to the ground, the surface line.
func (m Model) drawFlight(st *flight.State) {
	w, h := m.canvas.Width*2, m.canvas.Height*4
	cx, cy := w/2, h/2

	heading := astro.Heading(st.Rot)
	nx, ny := cx+int(heading.X*16), cy-int(heading.Y*16)
	m.canvas.DrawLine(cx, cy, nx, ny)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(nx+dx, ny+dy)
		}
	}

	if st.Thrust > 0 {
		fx, fy := cx-int(heading.X*22), cy+int(heading.Y*22)
		m.canvas.DrawLine(cx-int(heading.X*17), cy+int(heading.Y*17), fx, fy)
	}

	if st.Vel.Length() > 1 {
		dir := st.Vel.Scale(1 / st.Vel.Length())
		vx, vy := cx+int(dir.X*26), cy-int(dir.Y*26)
		m.canvas.Set(vx, vy)
		m.canvas.Set(vx+1, vy)
		m.canvas.Set(vx-1, vy)
		m.canvas.Set(vx, vy+1)
		m.canvas.Set(vx, vy-1)
	}

	if gy := cy + 24 + int(st.Altitude/25); gy < h {
		m.canvas.DrawLine(0, gy, w-1, gy)
	}
}

// drawMap is the system view: planet, moon, trail, craft and debris,
// auto-scaled to the craft's distance.
func (m Model) drawMap(st *flight.State) {
	w, h := m.canvas.Width*2, m.canvas.Height*4
	env := m.sim.Env()

	viewRadius := math.Max(st.Pos.Length()*1.25, env.Planet.Radius*2.2) / m.zoom
	scale := float64(minInt(w, h)) / 2 / viewRadius
	project := func(p astro.Vec2) (int, int) {
		return w/2 + int(p.X*scale), h/2 - int(p.Y*scale)
	}

	px, py := project(astro.Vec2{})
	m.canvas.FillCircle(px, py, int(env.Planet.Radius*scale))

	mx, my := project(env.MoonPos(st.Time))
	m.canvas.DrawCircle(mx, my, maxInt(1, int(env.Moon.Radius*scale)))

	for _, p := range m.trail {
		tx, ty := project(p)
		m.canvas.Set(tx, ty)
	}

	for _, d := range m.sim.Debris() {
		dx, dy := project(d.Pos)
		m.canvas.Set(dx, dy)
	}

	sx, sy := project(st.Pos)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(sx+dx, sy+dy)
		}
	}
}

const helpOverlay = `
╔══════════════════════════════════════════╗
║                 CONTROLS                 ║
╠══════════════════════════════════════════╣
║  Space      - Fire next stage            ║
║  P          - Deploy chutes and legs     ║
║  Z / X      - Full or cut throttle       ║
║  Up / Down  - Throttle up or down        ║
║  Left/Right - Turn the craft             ║
║  1 2 3 4    - Manual/Damp/Pro/Retro hold ║
║  , / .      - Time warp down or up       ║
║  M          - Toggle the orbit map       ║
║  + / -      - Map zoom in and out        ║
║  Tab        - Pause                      ║
║  R          - Back to the pad            ║
║  ?          - Toggle this help           ║
║  Q          - Quit                       ║
╚══════════════════════════════════════════╝`

func fmtClock(t float64) string {
	sec := int(t)
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func fmtDist(v float64) string {
	if math.IsInf(v, 1) {
		return "-"
	}
	if math.Abs(v) >= 10_000 {
		return fmt.Sprintf("%.1f km", v/1000)
	}
	return fmt.Sprintf("%.0f m", v)
}

func bar(frac float64, width int) string {
	filled := int(math.Max(0, math.Min(frac, 1)) * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
