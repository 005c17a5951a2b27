package tui

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/store"
)

func TestRecordAttemptsFeedsJournal(t *testing.T) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	cat, err := catalog.New(catalog.Level{ID: 1, Name: "One", Duration: time.Second, Sentences: []string{"cat dog"}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	ctrl := session.New(cat, session.WithOnFinish(RecordAttempts(st, zerolog.Nop())))
	if err := ctrl.Start(1); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctrl.SubmitInput("cat dog")
	ctrl.Tick(ctrl.ID())

	attempts, err := st.ListAttempts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	got := attempts[0]
	if got.SessionID != ctrl.ID() || got.Level != 1 || got.LevelName != "One" {
		t.Fatalf("unexpected attempt %+v", got)
	}
	if got.WPM != 2 || got.Accuracy != 100 || got.TypedChars != 7 || got.Duration != time.Second {
		t.Fatalf("unexpected result %+v", got)
	}

	m := NewModel(model.Config{}, ctrl, st, nil, zerolog.Nop())
	m.loadBest()
	if !m.hasBest || m.best.WPM != 2 {
		t.Fatalf("expected best attempt loaded, got %+v", m.best)
	}
}
