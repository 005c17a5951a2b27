package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/typemaster/internal/catalog"
)

// RenderLevels prints one row per catalog level.
func RenderLevels(w io.Writer, levels []catalog.Level) error {
	rows := make([][]string, 0, len(levels))
	for _, lvl := range levels {
		rows = append(rows, []string{
			fmt.Sprintf("%d", lvl.ID),
			lvl.Name,
			fmt.Sprintf("%ds", lvl.Seconds()),
			fmt.Sprintf("%d", len(lvl.Sentences)),
		})
	}
	return writeLines(w, formatTable([]string{"#", "Name", "Time", "Sentences"}, rows, map[int]bool{0: true, 2: true, 3: true}))
}
