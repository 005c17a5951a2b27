// Package score derives accuracy and word counts from typed text.
package score

import (
	"math"
	"strings"
	"unicode"
)

// Result is the snapshot taken when a level ends.
type Result struct {
	WPM      int
	Accuracy int
}

// Mark is the display state of a single target word.
type Mark int

const (
	// MarkPending means no typed token exists at the word's index.
	MarkPending Mark = iota
	// MarkCorrect means the typed token equals the target word.
	MarkCorrect
	// MarkWrong means the typed token differs from the target word.
	MarkWrong
)

// Accuracy compares typed text against the target words position by position.
//
// Whitespace is stripped from both sides and rune i of the typed text is
// matched only against rune i of the reference. There is no realignment, so
// one inserted or dropped character shifts every later comparison. Empty
// input scores 100.
func Accuracy(target []string, typed string) int {
	ref := []rune(strings.Join(target, ""))
	stripped := stripSpace(typed)
	if len(stripped) == 0 {
		return 100
	}
	matches := 0
	for i, r := range stripped {
		if i < len(ref) && ref[i] == r {
			matches++
		}
	}
	return int(math.Round(100 * float64(matches) / float64(len(stripped))))
}

// WordCount returns the number of whitespace-delimited tokens, counting a trailing partial word.
func WordCount(typed string) int {
	return len(strings.Fields(typed))
}

// Marks classifies each target word against the typed token at the same index.
func Marks(target []string, typed string) []Mark {
	tokens := strings.Fields(typed)
	marks := make([]Mark, len(target))
	for i, word := range target {
		switch {
		case i >= len(tokens):
			marks[i] = MarkPending
		case tokens[i] == word:
			marks[i] = MarkCorrect
		default:
			marks[i] = MarkWrong
		}
	}
	return marks
}

func stripSpace(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
