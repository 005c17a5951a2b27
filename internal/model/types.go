// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	StartLevel  int
	CatalogPath string
	LogFile     string
	LogLevel    string
	Mouse       bool
	Particles   bool
}

// Attempt captures a finished level attempt.
type Attempt struct {
	ID         int64
	SessionID  string
	Level      int
	LevelName  string
	WPM        int
	Accuracy   int
	Duration   time.Duration
	TypedChars int
	EndedAt    time.Time
}
