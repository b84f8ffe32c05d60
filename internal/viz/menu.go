package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/synclattice/internal/config"
	"github.com/san-kum/synclattice/internal/lattice"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var presetInfo = map[string]string{
	"calm":      "weak coupling, little noise",
	"critical":  "near the synchronization threshold",
	"turbulent": "noise dominates coupling",
	"entrain":   "strong coupling, fast lock-in",
	"frozen":    "no coupling, no noise",
}

const (
	stateMenu = iota
	stateSim
)

// menu picks a preset and then hands control to the live model.
type menu struct {
	state, cursor int
	presets       []string
	seed          int64
	err           error
	live          Model
}

func newMenu(seed int64) menu {
	return menu{state: stateMenu, presets: config.ListPresets(), seed: seed}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(m.presets[m.cursor])
	eng, err := lattice.NewEngine(cfg.Lattice(), lattice.WithSeed(m.seed), lattice.WithWorkers(cfg.Workers))
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(eng, cfg.FrameRate)
	m.state = stateSim
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var s strings.Builder
	s.WriteString("\n  " + cyan.Render("SYNCLATTICE") + dim.Render("  choose a preset") + "\n\n")
	for i, name := range m.presets {
		cfg := config.GetPreset(name)
		line := fmt.Sprintf("%-10s %s", name, dim.Render(fmt.Sprintf("N=%d K=%.2f D=%.3f", cfg.GridSize, cfg.Coupling, cfg.Noise)))
		if i == m.cursor {
			s.WriteString("  " + yellow.Render("▸ ") + white.Render(line) + "  " + dim.Render(presetInfo[name]) + "\n")
		} else {
			s.WriteString("    " + dim.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n  " + SparkLow.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n  " + dim.Render("↑↓ select  enter start  q quit") + "\n")
	return s.String()
}

// RunInteractive opens the preset menu and runs the chosen lattice live.
func RunInteractive(seed int64) error {
	_, err := tea.NewProgram(newMenu(seed), tea.WithAltScreen()).Run()
	return err
}
