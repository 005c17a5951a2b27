package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/keyboard"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
)

type fakeJournal struct {
	best model.Attempt
	ok   bool
}

func (f fakeJournal) BestByLevel(context.Context, int) (model.Attempt, bool, error) {
	return f.best, f.ok, nil
}

func newTestModel(t *testing.T, journal Journal) *Model {
	t.Helper()
	cat, err := catalog.New(
		catalog.Level{ID: 1, Name: "One", Duration: 2 * time.Second, Sentences: []string{"cat dog"}},
		catalog.Level{ID: 2, Name: "Two", Duration: 2 * time.Second, Sentences: []string{"red fox"}},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	n := 0
	ctrl := session.New(cat, session.WithIDSource(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}))
	return NewModel(model.Config{Mouse: true}, ctrl, journal, nil, zerolog.Nop())
}

func ctrlKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStartTicksFinish(t *testing.T) {
	m := newTestModel(t, fakeJournal{best: model.Attempt{WPM: 9, Accuracy: 88}, ok: true})
	m.Update(ctrlKey(tea.KeyCtrlS))
	if !m.ctrl.Running() || m.ctrl.ID() != "s1" {
		t.Fatalf("expected running session s1, got %q", m.ctrl.ID())
	}
	m.Update(tickMsg{id: "s1"})
	if got := m.ctrl.Snapshot().Remaining; got != 1 {
		t.Fatalf("expected 1s remaining, got %d", got)
	}
	_, cmd := m.Update(tickMsg{id: "s1"})
	if cmd != nil {
		t.Fatalf("expected no further tick after finish")
	}
	st := m.ctrl.Snapshot()
	if st.Phase != session.PhaseFinished {
		t.Fatalf("expected finished, got %s", st.Phase)
	}
	view := m.View()
	if !strings.Contains(view, "Level 1 Complete!") {
		t.Fatalf("expected result card, got %q", view)
	}
	if !strings.Contains(view, "Best this run: 9 WPM / 88%") {
		t.Fatalf("expected best line, got %q", view)
	}
	if !m.keys.Retry.Enabled() || !m.keys.Next.Enabled() {
		t.Fatalf("expected retry and next enabled after finish")
	}
}

func TestRestartIgnoresOldTicks(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(ctrlKey(tea.KeyCtrlS))
	m.Update(ctrlKey(tea.KeyCtrlS))
	if m.ctrl.ID() != "s2" {
		t.Fatalf("expected restart to issue s2, got %q", m.ctrl.ID())
	}
	_, cmd := m.Update(tickMsg{id: "s1"})
	if cmd != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	if got := m.ctrl.Snapshot().Remaining; got != 2 {
		t.Fatalf("stale tick changed remaining to %d", got)
	}
}

func TestRetryAndNextDisabledWhileRunning(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(ctrlKey(tea.KeyCtrlS))
	if m.keys.Retry.Enabled() || m.keys.Next.Enabled() {
		t.Fatalf("retry and next must be hidden while running")
	}
	m.Update(ctrlKey(tea.KeyCtrlN))
	if st := m.ctrl.Snapshot(); st.Level.ID != 1 || !st.Running() {
		t.Fatalf("next must not act while running")
	}
}

func TestTypingFlowsIntoSession(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(ctrlKey(tea.KeyCtrlS))
	m.Update(focusMsg{id: "s1"})
	m.Update(runeKey('c'))
	m.Update(runeKey('a'))
	if got := m.ctrl.Typed(); got != "ca" {
		t.Fatalf("expected typed %q, got %q", "ca", got)
	}
	if got := m.highlight.Label(); got != "A" {
		t.Fatalf("expected A lit, got %q", got)
	}
}

func TestTypingWhileIdleOnlyHighlights(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runeKey('q'))
	if m.ctrl.Typed() != "" {
		t.Fatalf("idle input must be discarded")
	}
	if m.highlight.Label() != "Q" {
		t.Fatalf("expected Q lit, got %q", m.highlight.Label())
	}
	if cmd == nil {
		t.Fatalf("expected release command")
	}
	m.Update(releaseMsg{token: 1})
	if m.highlight.Label() != "" {
		t.Fatalf("expected highlight released")
	}
}

func TestStaleReleaseKeepsNewerHighlight(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(runeKey('q'))
	m.Update(runeKey('w'))
	m.Update(releaseMsg{token: 1})
	if m.highlight.Label() != "W" {
		t.Fatalf("older release cleared newer highlight: %q", m.highlight.Label())
	}
}

func TestFocusForOldSessionIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(ctrlKey(tea.KeyCtrlS))
	m.Update(ctrlKey(tea.KeyCtrlS))
	m.Update(focusMsg{id: "s1"})
	if m.input.Focused() {
		t.Fatalf("focus for replaced session must be ignored")
	}
}

func clickOn(t *testing.T, m *Model, label string) tea.MouseMsg {
	t.Helper()
	x, y := m.keyboardOrigin()
	for _, k := range m.layout.Keys {
		if k.Label == label {
			return tea.MouseMsg{X: x + k.X, Y: y + k.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
		}
	}
	t.Fatalf("no key %q", label)
	return tea.MouseMsg{}
}

func TestMouseClickTypesWhileRunning(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.Update(clickOn(t, m, "Q"))
	if m.ctrl.Typed() != "" || m.highlight.Label() != "" {
		t.Fatalf("click while idle must be ignored")
	}

	m.Update(ctrlKey(tea.KeyCtrlS))
	m.Update(clickOn(t, m, "Q"))
	m.Update(clickOn(t, m, keyboard.Space))
	if got := m.ctrl.Typed(); got != "q " {
		t.Fatalf("expected %q, got %q", "q ", got)
	}
	if got := m.input.Value(); got != "q " {
		t.Fatalf("input box out of sync: %q", got)
	}
	m.Update(clickOn(t, m, keyboard.Backspace))
	if got := m.ctrl.Typed(); got != "q" {
		t.Fatalf("expected backspace to drop space, got %q", got)
	}
	if m.highlight.Label() != keyboard.Backspace {
		t.Fatalf("expected backspace lit, got %q", m.highlight.Label())
	}
}

func TestMouseDisabledByConfig(t *testing.T) {
	m := newTestModel(t, nil)
	m.config.Mouse = false
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(ctrlKey(tea.KeyCtrlS))
	m.Update(clickOn(t, m, "Q"))
	if m.ctrl.Typed() != "" {
		t.Fatalf("mouse input must be ignored when disabled")
	}
}

func finishLevel(m *Model) {
	id := m.ctrl.ID()
	m.Update(tickMsg{id: id})
	m.Update(tickMsg{id: id})
}

func TestNextThroughAllLevels(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(ctrlKey(tea.KeyCtrlS))
	finishLevel(m)
	m.Update(ctrlKey(tea.KeyCtrlN))
	st := m.ctrl.Snapshot()
	if st.Level.ID != 2 || !st.Running() {
		t.Fatalf("expected level 2 running, got level %d %s", st.Level.ID, st.Phase)
	}
	finishLevel(m)
	m.Update(ctrlKey(tea.KeyCtrlN))
	if m.notice != allDoneNotice {
		t.Fatalf("expected completion notice, got %q", m.notice)
	}
	if st := m.ctrl.Snapshot(); st.Level.ID != 2 || st.Phase != session.PhaseFinished {
		t.Fatalf("completion must not change the session")
	}
	if !strings.Contains(m.View(), allDoneNotice) {
		t.Fatalf("expected notice in view")
	}
	m.Update(ctrlKey(tea.KeyCtrlR))
	if !m.ctrl.Running() || m.notice != "" {
		t.Fatalf("retry should start level 2 again and clear the notice")
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 lines, got %d", len(lines))
	}
	_, y := m.keyboardOrigin()
	if !strings.Contains(lines[y], "Q") {
		t.Fatalf("expected top keyboard row at line %d, got %q", y, lines[y])
	}
}
