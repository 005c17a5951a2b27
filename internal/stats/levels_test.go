package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/typemaster/internal/catalog"
)

func TestRenderLevelsDefaultCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLevels(&buf, catalog.Default().Levels()); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", buf.String())
	}
	if lines[0] != "#  Name          Time  Sentences" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1  Beginner       60s") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "3  Advanced       30s") {
		t.Fatalf("unexpected last row %q", lines[3])
	}
}
