// Package keyboard implements the on-screen keyboard and its highlight slot.
package keyboard

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// Space is the label of the space bar.
	Space = "SPACE"
	// Backspace is the label of the backspace key.
	Backspace = "BACKSPACE"
)

// ReleaseDelay is how long a press stays highlighted.
const ReleaseDelay = 150 * time.Millisecond

// Rows is the key layout, top to bottom.
var Rows = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{"Z", "X", "C", "V", "B", "N", "M"},
	{Space, Backspace},
}

// Valid reports whether key is a label on the keyboard.
func Valid(key string) bool {
	switch key {
	case Space, Backspace:
		return true
	}
	return len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z'
}

// Apply returns typed edited by one press of key: space appends a space,
// backspace drops the last rune and a letter appends its lower-case form.
func Apply(key, typed string) (string, bool) {
	switch {
	case key == Space:
		return typed + " ", true
	case key == Backspace:
		if typed == "" {
			return typed, true
		}
		_, size := utf8.DecodeLastRuneInString(typed)
		return typed[:len(typed)-size], true
	case Valid(key):
		return typed + strings.ToLower(key), true
	default:
		return typed, false
	}
}

// Label maps a terminal key name to the highlight label shown for it.
func Label(name string) string {
	switch name {
	case " ", "space":
		return Space
	case "backspace":
		return Backspace
	}
	return strings.ToUpper(name)
}

// Target is the input channel the keyboard types into.
type Target interface {
	Running() bool
	Typed() string
	SubmitInput(raw string) bool
}

// Adapter routes virtual key presses into a Target and lights the key.
type Adapter struct {
	target    Target
	highlight *Highlight
}

// NewAdapter returns an adapter writing to target and highlight.
func NewAdapter(target Target, highlight *Highlight) *Adapter {
	return &Adapter{target: target, highlight: highlight}
}

// Press types key into the target. It does nothing unless the target is
// running. On success it returns the highlight token to release after
// ReleaseDelay.
func (a *Adapter) Press(key string) (uint64, bool) {
	if !a.target.Running() {
		return 0, false
	}
	next, ok := Apply(key, a.target.Typed())
	if !ok {
		return 0, false
	}
	if !a.target.SubmitInput(next) {
		return 0, false
	}
	return a.highlight.Set(key), true
}
