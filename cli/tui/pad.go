package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simforge-io/indigo/hid"
	"github.com/simforge-io/indigo/metrics"
)

// Injector is the slice of the session the pad drives.
type Injector interface {
	Tap(ctx context.Context, x, y float64) error
	TouchDown(ctx context.Context, x, y float64) error
	TouchMove(ctx context.Context, x, y float64) error
	TouchUp(ctx context.Context, x, y float64) error
	PressButton(ctx context.Context, source hid.ButtonSource) error
	Metrics() metrics.Snapshot
}

// Pad surface dimensions in cells. Coordinates are normalized over
// these so the full [0,1] range is reachable.
const (
	padCols = 41
	padRows = 17
)

// PadModel is the Bubble Tea model for the interactive touchpad.
type PadModel struct {
	injector Injector

	// cursor position in pad cells
	col int
	row int

	holding  bool // touch down without matching up
	status   string
	statusOK bool
	quitting bool
}

// NewPadModel creates a pad over the given injector, cursor centered.
func NewPadModel(injector Injector) PadModel {
	return PadModel{
		injector: injector,
		col:      padCols / 2,
		row:      padRows / 2,
		status:   "ready",
		statusOK: true,
	}
}

// X returns the cursor's normalized horizontal coordinate.
func (m PadModel) X() float64 {
	return float64(m.col) / float64(padCols-1)
}

// Y returns the cursor's normalized vertical coordinate.
func (m PadModel) Y() float64 {
	return float64(m.row) / float64(padRows-1)
}

// Init implements tea.Model.
func (m PadModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		if m.holding {
			// Release before leaving so the device isn't left mid-gesture.
			m.inject("touch up", m.injector.TouchUp(context.Background(), m.X(), m.Y()))
			m.holding = false
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(keyMsg, keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(keyMsg, keys.Tap):
		m.inject("tap", m.injector.Tap(context.Background(), m.X(), m.Y()))

	case key.Matches(keyMsg, keys.Hold):
		if m.holding {
			m.inject("touch up", m.injector.TouchUp(context.Background(), m.X(), m.Y()))
			m.holding = false
		} else {
			m.inject("touch down", m.injector.TouchDown(context.Background(), m.X(), m.Y()))
			m.holding = true
		}

	case key.Matches(keyMsg, keys.Home):
		m.inject("home", m.injector.PressButton(context.Background(), hid.ButtonSourceHome))
	case key.Matches(keyMsg, keys.Lock):
		m.inject("lock", m.injector.PressButton(context.Background(), hid.ButtonSourceLock))
	case key.Matches(keyMsg, keys.Siri):
		m.inject("siri", m.injector.PressButton(context.Background(), hid.ButtonSourceSiri))
	}

	return m, nil
}

// moveCursor shifts the cursor, clamped to the pad. While a touch is
// held the move is injected as a drag.
func (m *PadModel) moveCursor(dc, dr int) {
	m.col = clamp(m.col+dc, 0, padCols-1)
	m.row = clamp(m.row+dr, 0, padRows-1)
	if m.holding {
		m.inject("drag", m.injector.TouchMove(context.Background(), m.X(), m.Y()))
	}
}

// inject records the outcome of an injection for the status line.
func (m *PadModel) inject(action string, err error) {
	if err != nil {
		m.status = fmt.Sprintf("%s failed: %v", action, err)
		m.statusOK = false
		return
	}
	m.status = fmt.Sprintf("%s (%.3f, %.3f)", action, m.X(), m.Y())
	m.statusOK = true
}

// View implements tea.Model.
func (m PadModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("indigo pad"))
	b.WriteString("\n")
	b.WriteString(m.renderSurface())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	help := HelpStyle.Render("arrows/hjkl move · space tap · t hold/release · m home · o lock · s siri · q quit")
	return b.String() + "\n" + help
}

func (m PadModel) renderSurface() string {
	var rows []string
	for r := 0; r < padRows; r++ {
		var row strings.Builder
		for c := 0; c < padCols; c++ {
			if r == m.row && c == m.col {
				if m.holding {
					row.WriteString(WarningStyle.Render("●"))
				} else {
					row.WriteString(CursorStyle.Render("+"))
				}
			} else {
				row.WriteString("·")
			}
		}
		rows = append(rows, row.String())
	}
	return PadStyle.Render(strings.Join(rows, "\n"))
}

func (m PadModel) renderStatus() string {
	snap := m.injector.Metrics()

	var b strings.Builder
	coord := fmt.Sprintf("(%.3f, %.3f)", m.X(), m.Y())
	b.WriteString(LabelStyle.Render("cursor:"))
	b.WriteString(ValueStyle.Render(coord))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("sent:"))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d messages, %d bytes", snap.MessagesSent, snap.BytesSent)))
	if snap.SendFailures > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("  %d failures", snap.SendFailures)))
	}
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("last:"))
	if m.statusOK {
		b.WriteString(SuccessStyle.Render(m.status))
	} else {
		b.WriteString(ErrorStyle.Render(m.status))
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// keyMap defines pad key bindings.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Tap   key.Binding
	Hold  key.Binding
	Home  key.Binding
	Lock  key.Binding
	Siri  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
	Tap:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "tap")),
	Hold:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "hold/release")),
	Home:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "home button")),
	Lock:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "lock button")),
	Siri:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "siri")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// RunPad runs the touchpad TUI over the given injector.
func RunPad(injector Injector) error {
	p := tea.NewProgram(NewPadModel(injector), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
