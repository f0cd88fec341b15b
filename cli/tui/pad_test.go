package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simforge-io/indigo/hid"
	"github.com/simforge-io/indigo/metrics"
)

type stubInjector struct {
	taps    [][2]float64
	downs   [][2]float64
	moves   [][2]float64
	ups     [][2]float64
	buttons []hid.ButtonSource
	fail    error
}

func (s *stubInjector) Tap(_ context.Context, x, y float64) error {
	if s.fail != nil {
		return s.fail
	}
	s.taps = append(s.taps, [2]float64{x, y})
	return nil
}

func (s *stubInjector) TouchDown(_ context.Context, x, y float64) error {
	s.downs = append(s.downs, [2]float64{x, y})
	return nil
}

func (s *stubInjector) TouchMove(_ context.Context, x, y float64) error {
	s.moves = append(s.moves, [2]float64{x, y})
	return nil
}

func (s *stubInjector) TouchUp(_ context.Context, x, y float64) error {
	s.ups = append(s.ups, [2]float64{x, y})
	return nil
}

func (s *stubInjector) PressButton(_ context.Context, source hid.ButtonSource) error {
	s.buttons = append(s.buttons, source)
	return nil
}

func (s *stubInjector) Metrics() metrics.Snapshot {
	return metrics.Snapshot{MessagesSent: int64(len(s.taps) * 2)}
}

func press(m PadModel, k string) PadModel {
	var msg tea.KeyMsg
	switch k {
	case "up", "down", "left", "right", "enter":
		types := map[string]tea.KeyType{
			"up": tea.KeyUp, "down": tea.KeyDown,
			"left": tea.KeyLeft, "right": tea.KeyRight,
			"enter": tea.KeyEnter,
		}
		msg = tea.KeyMsg{Type: types[k]}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(PadModel)
}

func TestPadStartsCentered(t *testing.T) {
	m := NewPadModel(&stubInjector{})
	if m.X() < 0.49 || m.X() > 0.51 {
		t.Errorf("X() = %v, want ~0.5", m.X())
	}
	if m.Y() < 0.49 || m.Y() > 0.51 {
		t.Errorf("Y() = %v, want ~0.5", m.Y())
	}
}

func TestPadCursorMovesAndClamps(t *testing.T) {
	m := NewPadModel(&stubInjector{})

	for range padCols {
		m = press(m, "left")
	}
	if m.X() != 0 {
		t.Errorf("X() = %v after clamping left, want 0", m.X())
	}

	for range padCols * 2 {
		m = press(m, "right")
	}
	if m.X() != 1 {
		t.Errorf("X() = %v after clamping right, want 1", m.X())
	}

	for range padRows * 2 {
		m = press(m, "down")
	}
	if m.Y() != 1 {
		t.Errorf("Y() = %v after clamping down, want 1", m.Y())
	}
}

func TestPadTapInjectsAtCursor(t *testing.T) {
	inj := &stubInjector{}
	m := NewPadModel(inj)
	m = press(m, " ")

	if len(inj.taps) != 1 {
		t.Fatalf("got %d taps, want 1", len(inj.taps))
	}
	if inj.taps[0][0] != m.X() || inj.taps[0][1] != m.Y() {
		t.Errorf("tap at (%v, %v), cursor at (%v, %v)",
			inj.taps[0][0], inj.taps[0][1], m.X(), m.Y())
	}
}

func TestPadHoldDragRelease(t *testing.T) {
	inj := &stubInjector{}
	m := NewPadModel(inj)

	m = press(m, "t") // down
	m = press(m, "right")
	m = press(m, "right") // two drag moves
	m = press(m, "t")     // up

	if len(inj.downs) != 1 {
		t.Fatalf("got %d downs, want 1", len(inj.downs))
	}
	if len(inj.moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(inj.moves))
	}
	if len(inj.ups) != 1 {
		t.Fatalf("got %d ups, want 1", len(inj.ups))
	}
	if inj.moves[1][0] <= inj.moves[0][0] {
		t.Error("drag moves should advance rightward")
	}
}

func TestPadQuitReleasesHeldTouch(t *testing.T) {
	inj := &stubInjector{}
	m := NewPadModel(inj)

	m = press(m, "t")
	m = press(m, "q")

	if len(inj.ups) != 1 {
		t.Fatalf("quit with held touch sent %d ups, want 1", len(inj.ups))
	}
	if !m.quitting {
		t.Error("model not quitting after q")
	}
}

func TestPadButtonKeys(t *testing.T) {
	inj := &stubInjector{}
	m := NewPadModel(inj)

	m = press(m, "m")
	m = press(m, "o")
	m = press(m, "s")

	want := []hid.ButtonSource{hid.ButtonSourceHome, hid.ButtonSourceLock, hid.ButtonSourceSiri}
	if len(inj.buttons) != len(want) {
		t.Fatalf("got %d button presses, want %d", len(inj.buttons), len(want))
	}
	for i, src := range want {
		if inj.buttons[i] != src {
			t.Errorf("button %d = %v, want %v", i, inj.buttons[i], src)
		}
	}
}

func TestPadViewShowsFailure(t *testing.T) {
	inj := &stubInjector{fail: errors.New("socket closed")}
	m := NewPadModel(inj)
	m = press(m, " ")

	view := m.View()
	if !strings.Contains(view, "tap failed") {
		t.Errorf("view should surface the failed tap:\n%s", view)
	}
}

func TestPadViewContainsCursor(t *testing.T) {
	m := NewPadModel(&stubInjector{})
	view := m.View()
	if !strings.Contains(view, "indigo pad") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "cursor:") {
		t.Error("view missing cursor readout")
	}
}
