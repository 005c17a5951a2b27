// Package particles animates the decorative background strip.
package particles

import (
	"math/rand"
	"strings"
	"time"
)

// FrameInterval is the delay between animation steps.
const FrameInterval = 50 * time.Millisecond

// DefaultCount is the number of particles in a new field.
const DefaultCount = 80

type particle struct {
	x, y   float64
	dx, dy float64
	big    bool
}

// Field is a set of drifting particles in the unit square. Positions wrap at
// the edges.
type Field struct {
	particles []particle
}

// New returns a field of count particles with random positions and velocities.
func New(count int, rnd *rand.Rand) *Field {
	f := &Field{particles: make([]particle, count)}
	for i := range f.particles {
		f.particles[i] = particle{
			x:   rnd.Float64(),
			y:   rnd.Float64(),
			dx:  (rnd.Float64() - 0.5) * 0.01,
			dy:  (rnd.Float64() - 0.5) * 0.02,
			big: rnd.Intn(3) == 0,
		}
	}
	return f
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	for i := range f.particles {
		p := &f.particles[i]
		p.x = wrap(p.x + p.dx)
		p.y = wrap(p.y + p.dy)
	}
}

// Render draws the field onto a width by height grid of cells.
func (f *Field) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for _, p := range f.particles {
		col := int(p.x * float64(width))
		row := int(p.y * float64(height))
		if col >= width {
			col = width - 1
		}
		if row >= height {
			row = height - 1
		}
		ch := '.'
		if p.big {
			ch = 'o'
		}
		grid[row][col] = ch
	}
	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func wrap(v float64) float64 {
	switch {
	case v >= 1:
		return v - 1
	case v < 0:
		if v+1 >= 1 {
			return 0
		}
		return v + 1
	default:
		return v
	}
}
