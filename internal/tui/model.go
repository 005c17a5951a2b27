package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/keyboard"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/particles"
	"github.com/verte-zerg/typemaster/internal/score"
	"github.com/verte-zerg/typemaster/internal/session"
)

const (
	title           = "Typing Master Pro"
	allDoneNotice   = "You completed all levels!"
	focusDelay      = 100 * time.Millisecond
	lowTimeSeconds  = 10
	particleRows    = 2
	footerHeight    = 1
	minContentWidth = 20
)

type tickMsg struct{ id string }

type focusMsg struct{ id string }

type releaseMsg struct{ token uint64 }

type frameMsg struct{}

// Model implements the Bubble Tea game UI.
type Model struct {
	config  model.Config
	ctrl    *session.Controller
	journal Journal
	log     zerolog.Logger

	keys      keyMap
	help      help.Model
	input     textarea.Model
	highlight *keyboard.Highlight
	adapter   *keyboard.Adapter
	layout    keyboard.Layout
	field     *particles.Field

	width  int
	height int

	notice  string
	best    model.Attempt
	hasBest bool
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DCFFF"))
	levelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#BFBFBF"))
	timerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	lowTimeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
	statsStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	noticeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	particleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A5A"))
	textBoxStyle     = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3A3A3A")).
				Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 2).
			Align(lipgloss.Center)
)

// NewModel constructs the game model. field may be nil to disable the
// background animation.
func NewModel(cfg model.Config, ctrl *session.Controller, journal Journal, field *particles.Field, log zerolog.Logger) *Model {
	input := textarea.New()
	input.Placeholder = "Start typing here..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(3)
	input.KeyMap.InsertNewline.SetEnabled(false)
	input.Blur()

	highlight := &keyboard.Highlight{}
	m := &Model{
		config:    cfg,
		ctrl:      ctrl,
		journal:   journal,
		log:       log,
		keys:      newKeyMap(),
		help:      help.New(),
		input:     input,
		highlight: highlight,
		adapter:   keyboard.NewAdapter(ctrl, highlight),
		layout:    keyboard.NewLayout(),
		field:     field,
	}
	m.syncBindings()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.field == nil {
		return nil
	}
	return frameCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncBindings()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(m.contentWidth())
		return nil
	case frameMsg:
		if m.field == nil {
			return nil
		}
		m.field.Step()
		return frameCmd()
	case tickMsg:
		return m.handleTick(msg)
	case focusMsg:
		if msg.id != m.ctrl.ID() || !m.ctrl.Running() {
			return nil
		}
		return m.input.Focus()
	case releaseMsg:
		m.highlight.Release(msg.token)
		return nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return nil
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if !m.ctrl.Tick(msg.id) {
		return nil
	}
	if m.ctrl.Running() {
		return tickCmd(msg.id)
	}
	m.input.Blur()
	m.loadBest()
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m.start(m.ctrl.Snapshot().Level.ID)
	case key.Matches(msg, m.keys.Retry):
		if err := m.ctrl.Retry(); err != nil {
			return nil
		}
		return m.begin()
	case key.Matches(msg, m.keys.Next):
		return m.next()
	}

	var cmds []tea.Cmd
	if name := physicalKeyName(msg); name != "" {
		token := m.highlight.Set(keyboard.Label(name))
		cmds = append(cmds, releaseCmd(token))
	}
	if m.ctrl.Running() && m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != m.ctrl.Typed() {
			m.ctrl.SubmitInput(value)
		}
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func physicalKeyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes)
		}
	}
	return ""
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.config.Mouse || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if !m.keyboardVisible() {
		return nil
	}
	x, y := m.keyboardOrigin()
	label, ok := m.layout.HitTest(msg.X-x, msg.Y-y)
	if !ok {
		return nil
	}
	return m.pressVirtual(label)
}

func (m *Model) pressVirtual(label string) tea.Cmd {
	token, ok := m.adapter.Press(label)
	if !ok {
		return nil
	}
	m.input.SetValue(m.ctrl.Typed())
	return releaseCmd(token)
}

func (m *Model) start(levelID int) tea.Cmd {
	if err := m.ctrl.Start(levelID); err != nil {
		m.log.Warn().Err(err).Int("level_id", levelID).Msg("start refused")
		m.notice = err.Error()
		return nil
	}
	return m.begin()
}

func (m *Model) next() tea.Cmd {
	outcome, err := m.ctrl.Advance()
	if err != nil {
		return nil
	}
	if outcome == session.AllLevelsComplete {
		m.notice = allDoneNotice
		return nil
	}
	return m.begin()
}

// begin resets the view for the session the controller just started.
func (m *Model) begin() tea.Cmd {
	m.notice = ""
	m.hasBest = false
	m.input.Reset()
	id := m.ctrl.ID()
	return tea.Batch(tickCmd(id), focusCmd(id))
}

func (m *Model) loadBest() {
	if m.journal == nil {
		return
	}
	level := m.ctrl.Snapshot().Level.ID
	best, ok, err := m.journal.BestByLevel(context.Background(), level)
	if err != nil {
		m.log.Error().Err(err).Int("level_id", level).Msg("failed to load best attempt")
		return
	}
	m.best, m.hasBest = best, ok
}

func (m *Model) syncBindings() {
	st := m.ctrl.Snapshot()
	finished := st.Phase == session.PhaseFinished
	if st.Phase == session.PhaseIdle {
		m.keys.Start.SetHelp("ctrl+s", "start test")
	} else {
		m.keys.Start.SetHelp("ctrl+s", "restart")
	}
	m.keys.Retry.SetEnabled(finished)
	m.keys.Next.SetEnabled(finished)
	if st.Level.ID < m.ctrl.Catalog().Last() {
		m.keys.Next.SetHelp("ctrl+n", "next level")
	} else {
		m.keys.Next.SetHelp("ctrl+n", "finish")
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	body := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return body
	}
	footer := lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	if !m.keyboardVisible() {
		bodyHeight := m.height - footerHeight
		if bodyHeight < 1 {
			return fitHeight(body, m.height)
		}
		return fitHeight(lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body), bodyHeight) + "\n" + footer
	}
	bodyHeight := m.bodyHeight()
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	x, _ := m.keyboardOrigin()
	kb := indentLines(m.layout.Render(m.highlight.Label()), x)
	return fitHeight(placed, bodyHeight) + "\n\n" + kb + "\n" + footer
}

func (m *Model) renderBody() string {
	st := m.ctrl.Snapshot()
	width := m.contentWidth()

	var parts []string
	if m.field != nil && m.width > 0 {
		parts = append(parts, particleStyle.Render(m.field.Render(width, particleRows)))
	}
	parts = append(parts, titleStyle.Render(title), m.renderHeader(st, width), "")

	if st.ResultVisible {
		parts = append(parts, m.renderResult(st))
	} else {
		styled := buildStyledWords(st.Words, score.Marks(st.Words, st.Typed))
		text := wrapStyledRunes(styled, width-textBoxStyle.GetHorizontalFrameSize())
		parts = append(parts, textBoxStyle.Width(width-textBoxStyle.GetHorizontalBorderSize()).Render(text), "", m.input.View(), renderStats(st))
		if st.Phase == session.PhaseIdle {
			parts = append(parts, statsStyle.Render("Press ctrl+s to start"))
		}
	}
	if m.notice != "" {
		parts = append(parts, "", noticeStyle.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderHeader(st session.State, width int) string {
	level := levelStyle.Render(fmt.Sprintf("Level %d - %s", st.Level.ID, st.Level.Name))
	style := timerStyle
	if st.Remaining < lowTimeSeconds {
		style = lowTimeStyle
	}
	timer := style.Render(fmt.Sprintf("%ds", st.Remaining))
	gap := width - lipgloss.Width(level) - lipgloss.Width(timer)
	if gap < 1 {
		gap = 1
	}
	return level + strings.Repeat(" ", gap) + timer
}

func renderStats(st session.State) string {
	return statsStyle.Render(fmt.Sprintf("Words: %d  Accuracy: %d%%", st.LiveWords, st.LiveAccuracy))
}

func (m *Model) renderResult(st session.State) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Level %d Complete!", st.Level.ID)),
		levelStyle.Render(st.Level.Name + " Level"),
		"",
		fmt.Sprintf("%d WPM   %d%% Accuracy   %ds", st.Result.WPM, st.Result.Accuracy, st.Level.Seconds()),
	}
	if m.hasBest {
		lines = append(lines, statsStyle.Render(fmt.Sprintf("Best this run: %d WPM / %d%%", m.best.WPM, m.best.Accuracy)))
	}
	actions := "ctrl+r retry   ctrl+n next level"
	if st.Level.ID >= m.ctrl.Catalog().Last() {
		actions = "ctrl+r retry   ctrl+n finish"
	}
	lines = append(lines, "", statsStyle.Render(actions))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return m.layout.Width
	}
	w := int(float64(m.width) * 0.70)
	if w < minContentWidth {
		w = minContentWidth
	}
	if w > m.width {
		w = m.width
	}
	return w
}

func (m *Model) bodyHeight() int {
	return m.height - footerHeight - m.layout.Height - 1
}

func (m *Model) keyboardVisible() bool {
	return m.width >= m.layout.Width && m.bodyHeight() >= 1
}

// keyboardOrigin is the screen cell of the keyboard's top-left corner.
func (m *Model) keyboardOrigin() (int, int) {
	return (m.width - m.layout.Width) / 2, m.height - footerHeight - m.layout.Height
}

func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func indentLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func tickCmd(id string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

func focusCmd(id string) tea.Cmd {
	return tea.Tick(focusDelay, func(time.Time) tea.Msg { return focusMsg{id: id} })
}

func releaseCmd(token uint64) tea.Cmd {
	return tea.Tick(keyboard.ReleaseDelay, func(time.Time) tea.Msg { return releaseMsg{token: token} })
}

func frameCmd() tea.Cmd {
	return tea.Tick(particles.FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}
