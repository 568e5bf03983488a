package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/metrics"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 300
	tickRate        = time.Second / 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a frame.Driver from bubbletea ticks and renders the
// presented frame next to a metrics panel.
type Model struct {
	driver   *frame.Driver
	surface  *Surface
	tracker  *metrics.Tracker
	title    string
	seed     uint64
	theme    Theme
	styles   styles
	showHelp bool
}

func NewModel(cfg *config.Config, seed uint64, clock frame.Clock) Model {
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	surface := NewSurface(defaultCols, defaultRows, w, h)
	tracker := metrics.NewTracker(historyCapacity, metrics.Defaults(w, h)...)

	driver := frame.NewDriver(cfg.NewStore(seed), cfg.ParticleShape(), surface, clock)
	driver.AddObserver(tracker)

	title := cfg.Window.Title
	if cfg.Preset != "" {
		title += " · " + cfg.Preset
	}

	return Model{
		driver:  driver,
		surface: surface,
		tracker: tracker,
		title:   title,
		seed:    seed,
		theme:   ThemeMono,
		styles:  newStyles(ThemeMono),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Picked up by the driver's next poll.
			m.surface.RequestClose()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := msg.Width - panelWidth - 8
		rows := msg.Height - 2
		if cols > 0 && rows > 0 {
			m.surface.Resize(cols, rows)
		}
	case TickMsg:
		if m.driver.Step() == frame.Stopped {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.surface.Frame())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.styles.status.Render(strings.ToUpper(m.driver.State().String())) + "\n\n")

	if spread := m.tracker.History("spread"); len(spread) > 1 {
		chart := asciigraph.Plot(spread, asciigraph.Height(4), asciigraph.Width(panelWidth-16), asciigraph.Caption("Spread"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	values := m.tracker.Values()
	m.row(&s, "Frames", fmt.Sprintf("%d", m.driver.Frames()))
	m.row(&s, "Time", fmt.Sprintf("%.2fs", m.driver.Elapsed()))
	m.row(&s, "Count", fmt.Sprintf("%d", m.driver.Store().Len()))
	m.row(&s, "Visible", fmt.Sprintf("%.0f", values["visible"]))
	m.row(&s, "Speed", fmt.Sprintf("%.1f", values["mean_speed"]))
	m.row(&s, "Seed", fmt.Sprintf("%d", m.seed))
	m.row(&s, "Theme", m.theme.Name)

	s.WriteString(m.styles.help.Render("Q:Quit T:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))

	if m.showHelp {
		return m.styles.panel.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

func (m Model) row(s *strings.Builder, label, value string) {
	s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
}

const helpText = `KEYBOARD SHORTCUTS

  Q / Esc  close the viewer
  T        cycle themes
  ?        toggle this help`

// WithTheme switches to the named theme; unknown names fall back to mono.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	m.styles = newStyles(m.theme)
	return m
}

// Driver exposes the underlying frame driver.
func (m Model) Driver() *frame.Driver { return m.driver }

// Run opens the terminal viewer and blocks until it is closed.
func Run(cfg *config.Config, seed uint64, theme string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("viz: %w", err)
	}
	m := NewModel(cfg, seed, frame.NewWallClock()).WithTheme(theme)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
