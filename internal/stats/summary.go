// Package stats renders the end-of-run summary.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/typemaster/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderRunSummary prints every attempt of the run followed by the best per level.
// width limits the sparkline; zero means no limit.
func RenderRunSummary(w io.Writer, attempts []model.Attempt, width int) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No levels finished.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Attempts"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(attempts))
	for i, a := range attempts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d %s", a.Level, a.LevelName),
			fmt.Sprintf("%d", a.WPM),
			fmt.Sprintf("%d%%", a.Accuracy),
			fmt.Sprintf("%ds", int(a.Duration.Seconds())),
		})
	}
	if err := writeLines(w, formatTable([]string{"#", "Level", "WPM", "Accuracy", "Time"}, rows, map[int]bool{0: true, 2: true, 3: true, 4: true})); err != nil {
		return err
	}

	best := bestPerLevel(attempts)
	if _, err := fmt.Fprintln(w, "\nBest per level"); err != nil {
		return err
	}
	bestRows := make([][]string, 0, len(best))
	for _, a := range best {
		bestRows = append(bestRows, []string{
			fmt.Sprintf("%d %s", a.Level, a.LevelName),
			fmt.Sprintf("%d", a.WPM),
			fmt.Sprintf("%d%%", a.Accuracy),
		})
	}
	if err := writeLines(w, formatTable([]string{"Level", "WPM", "Accuracy"}, bestRows, map[int]bool{1: true, 2: true})); err != nil {
		return err
	}

	if len(attempts) > 1 {
		accs := make([]float64, len(attempts))
		for i, a := range attempts {
			accs[i] = float64(a.Accuracy)
		}
		const prefix = "Accuracy trend: "
		if limit := width - len(prefix); width > 0 && limit > 0 && len(accs) > limit {
			accs = accs[len(accs)-limit:]
		}
		if _, err := fmt.Fprintf(w, "\n%s%s\n", prefix, Sparkline(accs)); err != nil {
			return err
		}
	}
	return nil
}

func bestPerLevel(attempts []model.Attempt) []model.Attempt {
	byLevel := map[int]model.Attempt{}
	for _, a := range attempts {
		cur, ok := byLevel[a.Level]
		if !ok || a.WPM > cur.WPM || (a.WPM == cur.WPM && a.Accuracy > cur.Accuracy) {
			byLevel[a.Level] = a
		}
	}
	out := make([]model.Attempt, 0, len(byLevel))
	for _, a := range byLevel {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
