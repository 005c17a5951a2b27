package keyboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	minKeyWidth = 5
	spaceWidth  = 23
	keyGap      = 1
	rowGap      = 1
)

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D0D0D0")).
			Background(lipgloss.Color("#2E2E2E")).
			Align(lipgloss.Center)
	litKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#101010")).
			Background(lipgloss.Color("#C89A3A")).
			Bold(true).
			Align(lipgloss.Center)
)

// Rect is the cell span of one key, relative to the keyboard's top-left corner.
type Rect struct {
	Label string
	X     int
	Y     int
	W     int
}

// Layout places every key in Rows on a fixed character grid.
type Layout struct {
	Keys   []Rect
	Width  int
	Height int
}

// NewLayout centres each row under the widest one.
func NewLayout() Layout {
	widths := make([]int, len(Rows))
	maxWidth := 0
	for i, row := range Rows {
		for j, label := range row {
			if j > 0 {
				widths[i] += keyGap
			}
			widths[i] += keyWidth(label)
		}
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}
	l := Layout{Width: maxWidth}
	for i, row := range Rows {
		x := (maxWidth - widths[i]) / 2
		y := i * (1 + rowGap)
		for _, label := range row {
			w := keyWidth(label)
			l.Keys = append(l.Keys, Rect{Label: label, X: x, Y: y, W: w})
			x += w + keyGap
		}
	}
	l.Height = len(Rows)*(1+rowGap) - rowGap
	return l
}

// HitTest returns the key under the cell (x, y).
func (l Layout) HitTest(x, y int) (string, bool) {
	for _, k := range l.Keys {
		if y == k.Y && x >= k.X && x < k.X+k.W {
			return k.Label, true
		}
	}
	return "", false
}

// Render draws the keyboard with lit highlighted.
func (l Layout) Render(lit string) string {
	lines := make([]string, l.Height)
	cursor := make([]int, l.Height)
	for _, k := range l.Keys {
		style := keyStyle
		if k.Label == lit {
			style = litKeyStyle
		}
		var b strings.Builder
		b.WriteString(lines[k.Y])
		b.WriteString(strings.Repeat(" ", k.X-cursor[k.Y]))
		b.WriteString(style.Width(k.W).Render(displayName(k.Label)))
		lines[k.Y] = b.String()
		cursor[k.Y] = k.X + k.W
	}
	for i := range lines {
		lines[i] += strings.Repeat(" ", l.Width-cursor[i])
	}
	return strings.Join(lines, "\n")
}

func displayName(label string) string {
	switch label {
	case Space:
		return "Space"
	case Backspace:
		return "Backspace"
	}
	return label
}

func keyWidth(label string) int {
	if label == Space {
		return spaceWidth
	}
	w := runewidth.StringWidth(displayName(label)) + 2
	if w < minKeyWidth {
		return minKeyWidth
	}
	return w
}
