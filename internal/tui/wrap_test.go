package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typemaster/internal/score"
)

func TestBuildStyledWordsMarks(t *testing.T) {
	words := []string{"cat", "dog"}
	runes := buildStyledWords(words, score.Marks(words, "cat"))
	if len(runes) != 7 {
		t.Fatalf("expected 7 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("c") {
		t.Fatalf("expected correct style for finished word")
	}
	if !runes[3].isSpace {
		t.Fatalf("expected separator at index 3")
	}
	if runes[4].s != currentWordStyle.Render("d") {
		t.Fatalf("expected current word style for next word")
	}
}

func TestBuildStyledWordsWrongWord(t *testing.T) {
	words := []string{"cat", "dog", "owl"}
	runes := buildStyledWords(words, score.Marks(words, "cax"))
	if runes[2].s != incorrectStyle.Render("t") {
		t.Fatalf("expected incorrect style for mistyped word")
	}
	if runes[4].s != currentWordStyle.Render("d") {
		t.Fatalf("expected current word style for second word")
	}
	if runes[8].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for later word")
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	words := []string{"one", "two", "three"}
	runes := buildStyledWords(words, score.Marks(words, ""))
	out := wrapStyledRunes(runes, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if lines[0] != renderStyledRunes(runes[:7]) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	words := []string{"abcdef"}
	runes := buildStyledWords(words, score.Marks(words, ""))
	out := wrapStyledRunes(runes, 4)
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected hard break inside long word, got %q", out)
	}
}
