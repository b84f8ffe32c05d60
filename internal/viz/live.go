package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/synclattice/internal/lattice"
)

const (
	historyCapacity  = 300
	defaultRadius    = 4.0
	defaultIntensity = 1.0
)

var tunables = []string{"coupling", "noise", "dt", "radius", "intensity"}

var injectKeys = map[string]lattice.Pattern{
	"p": lattice.Pulse,
	"s": lattice.Spiral,
	"c": lattice.Chaos,
	"z": lattice.Stabilize,
	"u": lattice.Unity,
	"e": lattice.Elysium,
}

type TickMsg time.Time

// Model drives an engine at a fixed frame rate and renders it.
type Model struct {
	eng           *lattice.Engine
	initial       lattice.Config
	fps           int
	stepsPerFrame int
	running       bool
	showHelp      bool

	cursorX, cursorY int
	radius           float64
	intensity        float64
	selected         int

	coherence []float64
	entropy   []float64
	manifest  *lattice.Manifest
	lastEvent string
}

// NewModel wraps eng. fps <= 0 defaults to 30 frames per second.
func NewModel(eng *lattice.Engine, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	size := eng.Config().GridSize
	return Model{
		eng:           eng,
		initial:       eng.Config(),
		fps:           fps,
		stepsPerFrame: 1,
		running:       true,
		cursorX:       size / 2,
		cursorY:       size / 2,
		radius:        defaultRadius,
		intensity:     defaultIntensity,
		coherence:     make([]float64, 0, historyCapacity),
		entropy:       make([]float64, 0, historyCapacity),
	}
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.frame()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if pattern, ok := injectKeys[key]; ok {
			m.inject(pattern)
			return m, nil
		}
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		case "tab":
			m.selected = (m.selected + 1) % len(tunables)
		case "up":
			m.adjustParam(1.1)
		case "down":
			m.adjustParam(1 / 1.1)
		case "h", "left":
			m.moveCursor(-1, 0)
		case "l", "right":
			m.moveCursor(1, 0)
		case "k":
			m.moveCursor(0, -1)
		case "j":
			m.moveCursor(0, 1)
		case "+", "=":
			if m.stepsPerFrame < 64 {
				m.stepsPerFrame *= 2
			}
		case "-", "_":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		case "n":
			if !m.running {
				m.step()
			}
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.step()
			}
		}
		return m, m.frame()
	}
	return m, nil
}

// step advances the engine one tick and records its sample.
func (m *Model) step() {
	s := m.eng.Tick()
	m.coherence = appendCapped(m.coherence, s.Coherence)
	m.entropy = appendCapped(m.entropy, s.Entropy)
}

func appendCapped(series []float64, v float64) []float64 {
	series = append(series, v)
	if len(series) > historyCapacity {
		series = series[1:]
	}
	return series
}

func (m *Model) inject(p lattice.Pattern) {
	cmd := lattice.Command{
		TargetX:   m.cursorX,
		TargetY:   m.cursorY,
		Radius:    m.radius,
		Intensity: m.intensity,
		Pattern:   p,
	}
	manifest := m.eng.Inject(cmd)
	if manifest != nil {
		m.manifest = manifest
		m.lastEvent = fmt.Sprintf("%s at (%d,%d): %d anchors", p, m.cursorX, m.cursorY, manifest.Placed())
		return
	}
	m.lastEvent = fmt.Sprintf("%s at (%d,%d) r=%.1f", p, m.cursorX, m.cursorY, m.radius)
}

func (m *Model) moveCursor(dx, dy int) {
	n := m.eng.Config().GridSize
	m.cursorX = (m.cursorX + dx + n) % n
	m.cursorY = (m.cursorY + dy + n) % n
}

func (m *Model) adjustParam(factor float64) {
	cfg := m.eng.Config()
	switch tunables[m.selected] {
	case "coupling":
		cfg.Coupling = nudge(cfg.Coupling, factor, 0.01)
	case "noise":
		cfg.Noise = nudge(cfg.Noise, factor, 0.001)
	case "dt":
		cfg.Dt = nudge(cfg.Dt, factor, 0.001)
	case "radius":
		m.radius = nudge(m.radius, factor, 0.5)
		return
	case "intensity":
		m.intensity = nudge(m.intensity, factor, 0.05)
		return
	}
	if err := m.eng.SetConfig(cfg); err != nil {
		m.lastEvent = err.Error()
	}
}

// nudge scales v by factor, stepping off zero with floor when growing.
func nudge(v, factor, floor float64) float64 {
	if v == 0 && factor > 1 {
		return floor
	}
	v *= factor
	if v < floor/2 && factor < 1 {
		return 0
	}
	return v
}

// reset restores the initial parameters and redraws initial conditions.
func (m *Model) reset() {
	_ = m.eng.SetConfig(m.initial)
	m.eng.Reset()
	m.coherence = m.coherence[:0]
	m.entropy = m.entropy[:0]
	m.manifest = nil
	m.lastEvent = "reset"
	m.radius, m.intensity = defaultRadius, defaultIntensity
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.renderGrid())

	var s strings.Builder
	s.WriteString(headerStyle().Render("SYNCLATTICE") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render(fmt.Sprintf("RUNNING x%d", m.stepsPerFrame)) + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	coh, ent := 0.0, 0.0
	if n := len(m.coherence); n > 0 {
		coh, ent = m.coherence[n-1], m.entropy[n-1]
	}
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.eng.Step())) + "\n")
	s.WriteString(labelStyle.Render("Coherence") + ProgressBar(coh, 20) + valueStyle.Render(fmt.Sprintf(" %.3f", coh)) + "\n")
	s.WriteString(labelStyle.Render("Entropy") + ProgressBar(1-ent, 20) + valueStyle.Render(fmt.Sprintf(" %.3f", ent)) + "\n")
	s.WriteString(labelStyle.Render("Cursor") + valueStyle.Render(fmt.Sprintf("(%d,%d)", m.cursorX, m.cursorY)) + "\n")

	if len(m.coherence) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.coherence, m.entropy},
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption("coherence / entropy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	cfg := m.eng.Config()
	values := map[string]float64{
		"coupling":  cfg.Coupling,
		"noise":     cfg.Noise,
		"dt":        cfg.Dt,
		"radius":    m.radius,
		"intensity": m.intensity,
	}
	for i, k := range tunables {
		line := fmt.Sprintf("%-10s %.3f", k, values[k])
		if i == m.selected {
			s.WriteString(activeParamStyle().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.lastEvent != "" {
		s.WriteString("\n" + valueStyle.Render(m.lastEvent) + "\n")
	}
	if m.manifest != nil {
		s.WriteString("\n" + Separator(40) + "\n")
		s.WriteString(renderManifest(m.manifest, 6))
	}

	s.WriteString(helpStyle().Render("\nSP:Pause R:Reset Q:Quit T:Theme ?:Help\nP S C Z U E:Inject hjkl:Cursor"))
	statsView := statsStyle.BorderForeground(CurrentTheme.Border).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Single step when paused  ║
║  R        - Reset lattice            ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/Down  - Tune parameter (x1.1)    ║
║  H/J/K/L  - Move injection cursor    ║
║  +/-      - Ticks per frame          ║
║  P        - Pulse                    ║
║  S        - Spiral                   ║
║  C        - Chaos                    ║
║  Z        - Stabilize                ║
║  U        - Unity                    ║
║  E        - Elysium anchors          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// renderGrid draws one glyph per node. Grids up to 40 wide use two
// columns per node so cells stay roughly square.
func (m Model) renderGrid() string {
	g := m.eng.Grid()
	wide := g.Size <= 40
	th := CurrentTheme

	var sb strings.Builder
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			i := g.Index(x, y)
			sb.WriteString(m.renderCell(g.Nodes[i], i, x, y, wide, th))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m Model) renderCell(n lattice.Node, i, x, y int, wide bool, th Theme) string {
	glyph := "█"
	color := lipgloss.Color(PhaseColor(n.Theta, n.R, th))
	switch {
	case n.Titan:
		glyph = "◆"
		color = th.Titan
	case n.Spark:
		glyph = "✦"
	}
	if _, ok := m.eng.Tags(i); ok {
		glyph = "◎"
	}

	style := lipgloss.NewStyle().Foreground(color)
	if x == m.cursorX && y == m.cursorY {
		glyph = "╳"
		style = lipgloss.NewStyle().Foreground(th.Cursor).Bold(true)
	}
	if wide {
		if glyph == "█" {
			glyph = "██"
		} else {
			glyph += " "
		}
	}
	return style.Render(glyph)
}

func renderManifest(mf *lattice.Manifest, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ELYSIUM (%d,%d) placed=%d skipped=%d\n", mf.CenterX, mf.CenterY, mf.Placed(), mf.Skipped))
	for i, a := range mf.Anchors {
		if i == limit {
			sb.WriteString(fmt.Sprintf("  ... %d more\n", len(mf.Anchors)-limit))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s (%d,%d) %s links=%d\n", a.Identity, a.X, a.Y, a.Status, a.Links))
	}
	return sb.String()
}

// RunLive starts the live TUI on eng and blocks until the user quits.
func RunLive(eng *lattice.Engine, fps int) error {
	_, err := tea.NewProgram(NewModel(eng, fps), tea.WithAltScreen()).Run()
	return err
}
