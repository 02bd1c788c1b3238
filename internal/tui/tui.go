// Package tui is the terminal frontend: the canvas is drawn with a character
// ramp and the parameters are edited from the keyboard.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"csca/internal/config"
	"csca/internal/core"
	"csca/internal/render"
	"csca/internal/sims/recurrence"
)

// Ramp maps gray levels to characters, darkest first.
const Ramp = " .:-=+*#%@"

// panelRows is the number of terminal rows below the canvas.
const panelRows = 7

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	editStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true)
)

type renderedMsg struct {
	gen uint64
	buf *core.PixelBuffer
}

// Model is the bubbletea model of the terminal frontend.
type Model struct {
	params   *core.ParameterSet
	controls []core.ParameterControl
	seeder   *core.Seeder
	render   render.RenderFunc
	log      *slog.Logger

	cursor  int
	editing bool
	editBuf string

	dirty bool
	gen   uint64
	buf   *core.PixelBuffer

	width  int
	height int
}

// New builds a model over params. Parameter changes mark the canvas dirty;
// the next Update turns that into a render command.
func New(params *core.ParameterSet, seeder *core.Seeder, fn render.RenderFunc, log *slog.Logger) *Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		params:   params,
		controls: params.Controls(),
		seeder:   seeder,
		render:   fn,
		log:      log,
		width:    80,
		height:   24,
	}
	params.OnChange(func(key string, v float64) {
		m.log.Debug("parameter changed", "key", key, "value", v)
		m.dirty = true
	})
	m.dirty = false
	return m
}

// Init requests the first render.
func (m *Model) Init() tea.Cmd {
	return m.requestRender()
}

// Update handles keys, resizes and finished renders.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.dirty = false
		return m, m.requestRender()
	case renderedMsg:
		if msg.gen != m.gen {
			m.log.Debug("render superseded", "gen", msg.gen, "latest", m.gen)
			return m, nil
		}
		m.buf = msg.buf
		return m, nil
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}
	if m.dirty {
		m.dirty = false
		return m, m.requestRender()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.editing {
		m.handleEditKey(msg)
		return nil
	}
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + len(m.controls) - 1) % len(m.controls)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.controls)
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "shift+left", "H":
		m.nudge(-10)
	case "shift+right", "L":
		m.nudge(10)
	case "r":
		m.dirty = true
	case "e", "enter":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.selected().Get(), 'f', -1, 64)
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		// Unparsable text leaves the parameter as it was.
		m.selected().SetString(m.editBuf)
		m.editing = false
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyBackspace:
		if m.editBuf != "" {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if strings.ContainsRune("0123456789.-+eE", r) {
				m.editBuf += string(r)
			}
		}
	}
}

func (m *Model) selected() *core.Parameter {
	p, _ := m.params.Lookup(m.controls[m.cursor].Key)
	return p
}

func (m *Model) nudge(steps int) {
	p := m.selected()
	v := p.Get()
	if target := m.controls[m.cursor].Nudge(v, steps); target != v {
		p.Set(target)
	}
}

// CanvasSize is the part of the terminal used for the image.
func (m *Model) CanvasSize() core.Size {
	h := m.height - panelRows
	if h < 1 {
		h = 1
	}
	w := m.width
	if w < 1 {
		w = 1
	}
	return core.Size{W: w, H: h}
}

func (m *Model) requestRender() tea.Cmd {
	m.gen++
	gen := m.gen
	p := m.params.Snapshot()
	size := m.CanvasSize()
	rng := m.seeder.Next()
	fn := m.render
	m.log.Debug("render requested", "gen", gen, "w", size.W, "h", size.H)
	return func() tea.Msg {
		return renderedMsg{gen: gen, buf: fn(p, size, rng)}
	}
}

// View draws the canvas and the parameter panel.
func (m *Model) View() string {
	var b strings.Builder
	if m.buf != nil {
		b.WriteString(Shade(m.buf))
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("csca") + "\n")
	for i, ctrl := range m.controls {
		v, _ := m.params.Get(ctrl.Key)
		value := strconv.FormatFloat(v, 'f', 3, 64)
		line := fmt.Sprintf("  %-12s %s", ctrl.Label, value)
		switch {
		case i == m.cursor && m.editing:
			line = selectedStyle.Render(fmt.Sprintf("> %-12s ", ctrl.Label)) + editStyle.Render(m.editBuf+"_")
		case i == m.cursor:
			line = selectedStyle.Render(fmt.Sprintf("> %-12s %s", ctrl.Label, value))
		default:
			line = labelStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(hintStyle.Render("↑/↓ select  ←/→ step (shift ×10)  e type  r redraw  q quit"))
	return b.String()
}

// Shade renders buf as lines of ramp characters.
func Shade(buf *core.PixelBuffer) string {
	var b strings.Builder
	b.Grow((buf.W + 1) * buf.H)
	for y := 0; y < buf.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < buf.W; x++ {
			b.WriteByte(ShadeChar(buf.Gray(x, y)))
		}
	}
	return b.String()
}

// ShadeChar maps one gray level onto Ramp.
func ShadeChar(g uint8) byte {
	return Ramp[int(g)*len(Ramp)/256]
}

// Run starts the terminal frontend and blocks until the user quits.
func Run(cfg *config.Config, log *slog.Logger) error {
	params := core.NewParameterSet(cfg.Initial())
	m := New(params, core.NewSeeder(cfg.Seed), recurrence.RenderSize, log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
