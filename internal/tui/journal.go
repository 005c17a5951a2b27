package tui

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
)

// Journal answers questions about earlier attempts of the run.
type Journal interface {
	BestByLevel(ctx context.Context, level int) (model.Attempt, bool, error)
}

// AttemptWriter stores finished attempts.
type AttemptWriter interface {
	InsertAttempt(ctx context.Context, a model.Attempt) (int64, error)
}

// RecordAttempts returns a session finish hook that writes each result to w.
func RecordAttempts(w AttemptWriter, log zerolog.Logger) func(session.State) {
	return func(st session.State) {
		if _, err := w.InsertAttempt(context.Background(), attemptFromState(st)); err != nil {
			log.Error().Err(err).Str("session", st.ID).Msg("failed to record attempt")
		}
	}
}

func attemptFromState(st session.State) model.Attempt {
	return model.Attempt{
		SessionID:  st.ID,
		Level:      st.Level.ID,
		LevelName:  st.Level.Name,
		WPM:        st.Result.WPM,
		Accuracy:   st.Result.Accuracy,
		Duration:   st.Level.Duration,
		TypedChars: utf8.RuneCountInString(st.Typed),
		EndedAt:    st.EndedAt,
	}
}
