package particles

import (
	"math/rand"
	"strings"
	"testing"
)

func TestStepKeepsParticlesInside(t *testing.T) {
	f := New(DefaultCount, rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		f.Step()
	}
	for i, p := range f.particles {
		if p.x < 0 || p.x >= 1 || p.y < 0 || p.y >= 1 {
			t.Fatalf("particle %d escaped: %+v", i, p)
		}
	}
}

func TestWrap(t *testing.T) {
	if got := wrap(1.25); got != 0.25 {
		t.Fatalf("wrap(1.25) = %v", got)
	}
	if got := wrap(-0.25); got != 0.75 {
		t.Fatalf("wrap(-0.25) = %v", got)
	}
}

func TestRenderSize(t *testing.T) {
	f := New(10, rand.New(rand.NewSource(1)))
	out := f.Render(20, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 20 {
			t.Fatalf("expected width 20, got %q", line)
		}
	}
	if strings.Trim(out, " \n") == "" {
		t.Fatalf("expected at least one particle drawn")
	}
	if f.Render(0, 3) != "" {
		t.Fatalf("expected empty render for zero width")
	}
}
