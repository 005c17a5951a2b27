package catalog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// fileCatalog is the TOML layout of a custom catalog. Level ids follow table order.
type fileCatalog struct {
	Levels []fileLevel `toml:"level"`
}

type fileLevel struct {
	Name      string   `toml:"name"`
	Seconds   int      `toml:"seconds"`
	Sentences []string `toml:"sentences"`
}

// LoadFile reads a TOML catalog and validates it like New.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat catalog: %w", err)
	}
	var fc fileCatalog
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown catalog key %q", undecoded[0].String())
	}
	levels := make([]Level, len(fc.Levels))
	for i, fl := range fc.Levels {
		levels[i] = Level{
			ID:        i + 1,
			Name:      fl.Name,
			Duration:  time.Duration(fl.Seconds) * time.Second,
			Sentences: fl.Sentences,
		}
	}
	cat, err := New(levels...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return cat, nil
}

// Encode writes the catalog in the TOML layout accepted by LoadFile.
func Encode(w io.Writer, cat *Catalog) error {
	fc := fileCatalog{Levels: make([]fileLevel, 0, cat.Len())}
	for _, lvl := range cat.Levels() {
		fc.Levels = append(fc.Levels, fileLevel{
			Name:      lvl.Name,
			Seconds:   lvl.Seconds(),
			Sentences: lvl.Sentences,
		})
	}
	if err := toml.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}
