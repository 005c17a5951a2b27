// Package session implements the timed level state machine.
package session

import (
	"errors"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/score"
)

// ErrNotFinished is returned by Retry and Advance outside the Finished phase.
var ErrNotFinished = errors.New("session is not finished")

// ErrRunning is returned by Select while a session is running.
var ErrRunning = errors.New("session is running")

// Phase is the controller state.
type Phase int

const (
	// PhaseIdle means no session has been started yet.
	PhaseIdle Phase = iota
	// PhaseRunning means the countdown is active and input is accepted.
	PhaseRunning
	// PhaseFinished means the countdown expired and a result is shown.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Advance reports the outcome of moving to the next level.
type Advance int

const (
	// Advanced means the next level was started.
	Advanced Advance = iota + 1
	// AllLevelsComplete means the last level was already reached; nothing changed.
	AllLevelsComplete
)

// State is a read-only copy of the controller for rendering.
type State struct {
	ID            string
	Phase         Phase
	Level         catalog.Level
	Words         []string
	Typed         string
	Remaining     int
	LiveAccuracy  int
	LiveWords     int
	Result        score.Result
	ResultVisible bool
	StartedAt     time.Time
	EndedAt       time.Time
}

// Running reports whether input is currently accepted.
func (s State) Running() bool {
	return s.Phase == PhaseRunning
}

// Controller owns the single active session.
type Controller struct {
	catalog  *catalog.Catalog
	rnd      *rand.Rand
	log      zerolog.Logger
	newID    func() string
	now      func() time.Time
	onFinish func(State)

	id            string
	phase         Phase
	level         catalog.Level
	words         []string
	typed         string
	remaining     int
	liveAccuracy  int
	result        score.Result
	resultVisible bool
	startedAt     time.Time
	endedAt       time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the sentence picker source.
func WithRand(rnd *rand.Rand) Option {
	return func(c *Controller) { c.rnd = rnd }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithIDSource overrides session id generation.
func WithIDSource(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithClock overrides the wall clock used for start and end timestamps.
func WithClock(fn func() time.Time) Option {
	return func(c *Controller) { c.now = fn }
}

// WithOnFinish registers a hook called once per finished session.
func WithOnFinish(fn func(State)) Option {
	return func(c *Controller) { c.onFinish = fn }
}

// New returns an idle controller with the first catalog level selected.
func New(cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog:      cat,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
		log:          zerolog.Nop(),
		newID:        uuid.NewString,
		now:          time.Now,
		liveAccuracy: 100,
	}
	for _, opt := range opts {
		opt(c)
	}
	first, err := cat.Get(1)
	if err != nil {
		panic("session: catalog without level 1: " + err.Error())
	}
	c.selectLevel(first)
	return c
}

// Select shows another level without starting it and returns to the idle phase.
func (c *Controller) Select(levelID int) error {
	if c.phase == PhaseRunning {
		return ErrRunning
	}
	lvl, err := c.catalog.Get(levelID)
	if err != nil {
		return err
	}
	c.selectLevel(lvl)
	c.phase = PhaseIdle
	c.result = score.Result{}
	c.resultVisible = false
	return nil
}

func (c *Controller) selectLevel(lvl catalog.Level) {
	c.level = lvl
	c.words = catalog.PickSentence(lvl, c.rnd)
	c.typed = ""
	c.remaining = lvl.Seconds()
	c.liveAccuracy = 100
}

// Start begins a fresh session on the given level. It also serves as restart
// while running. An unknown level leaves every field untouched.
func (c *Controller) Start(levelID int) error {
	lvl, err := c.catalog.Get(levelID)
	if err != nil {
		return err
	}
	c.selectLevel(lvl)
	c.id = c.newID()
	c.phase = PhaseRunning
	c.result = score.Result{}
	c.resultVisible = false
	c.startedAt = c.now()
	c.endedAt = time.Time{}
	c.log.Debug().
		Str("session", c.id).
		Int("level_id", lvl.ID).
		Int("seconds", c.remaining).
		Int("words", len(c.words)).
		Msg("session started")
	return nil
}

// Tick applies one elapsed second to the session identified by id. Ticks for
// another session, or outside the running phase, are ignored and return false.
// The tick that reaches zero finishes the session.
func (c *Controller) Tick(id string) bool {
	if id != c.id || c.phase != PhaseRunning || c.remaining <= 0 {
		return false
	}
	c.remaining--
	if c.remaining == 0 {
		c.Finish()
	}
	return true
}

// Finish ends a running session and records its result. It is a no-op in any
// other phase, so a second call cannot change the result.
func (c *Controller) Finish() {
	if c.phase != PhaseRunning {
		return
	}
	c.phase = PhaseFinished
	c.endedAt = c.now()
	c.result = score.Result{
		WPM:      score.WordCount(c.typed),
		Accuracy: score.Accuracy(c.words, c.typed),
	}
	c.liveAccuracy = c.result.Accuracy
	c.resultVisible = true
	c.log.Info().
		Str("session", c.id).
		Int("level_id", c.level.ID).
		Int("wpm", c.result.WPM).
		Int("accuracy", c.result.Accuracy).
		Msg("session finished")
	if c.onFinish != nil {
		c.onFinish(c.Snapshot())
	}
}

// Retry restarts the current level after a finished session.
func (c *Controller) Retry() error {
	if c.phase != PhaseFinished {
		return ErrNotFinished
	}
	return c.Start(c.level.ID)
}

// Advance starts the next level after a finished session. At the last level it
// returns AllLevelsComplete and changes nothing.
func (c *Controller) Advance() (Advance, error) {
	if c.phase != PhaseFinished {
		return 0, ErrNotFinished
	}
	if c.level.ID >= c.catalog.Last() {
		c.log.Info().Int("level_id", c.level.ID).Msg("all levels complete")
		return AllLevelsComplete, nil
	}
	if err := c.Start(c.level.ID + 1); err != nil {
		return 0, err
	}
	return Advanced, nil
}

// SubmitInput replaces the typed text while running. Input in any other phase
// is discarded and false is returned.
func (c *Controller) SubmitInput(raw string) bool {
	if c.phase != PhaseRunning {
		return false
	}
	c.typed = raw
	c.liveAccuracy = score.Accuracy(c.words, raw)
	return true
}

// ID returns the current session id, empty before the first start.
func (c *Controller) ID() string {
	return c.id
}

// Running reports whether input is currently accepted.
func (c *Controller) Running() bool {
	return c.phase == PhaseRunning
}

// Typed returns the current typed text.
func (c *Controller) Typed() string {
	return c.typed
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() State {
	return State{
		ID:            c.id,
		Phase:         c.phase,
		Level:         c.level,
		Words:         slices.Clone(c.words),
		Typed:         c.typed,
		Remaining:     c.remaining,
		LiveAccuracy:  c.liveAccuracy,
		LiveWords:     score.WordCount(c.typed),
		Result:        c.result,
		ResultVisible: c.resultVisible,
		StartedAt:     c.startedAt,
		EndedAt:       c.endedAt,
	}
}

// Catalog returns the catalog the controller was built with.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}
