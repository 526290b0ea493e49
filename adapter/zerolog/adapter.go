package zerologadapter

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtrace"
)

// Adapter bridges xtrace to rs/zerolog.
//
// Every trace line is written at the adapter's trace level; the bound
// zerolog.Logger and zerolog's global level decide whether that level passes.
// An adapter with no bound logger is inert, and so is one bound to a
// writer-less logger such as zerolog.Logger{}.
type Adapter struct {
	l     atomic.Pointer[zerolog.Logger] // nil: inert
	level xtrace.LevelVar
}

// New binds the adapter to zerolog.DefaultContextLogger as it is right now.
// zerolog leaves that unset by default, in which case the adapter is inert.
func New() *Adapter {
	if dl := zerolog.DefaultContextLogger; dl != nil {
		return NewWithLogger(*dl)
	}
	return &Adapter{}
}

// NewWithLogger binds an explicit zerolog logger.
func NewWithLogger(l zerolog.Logger) *Adapter {
	a := &Adapter{}
	if hasOutput(l) {
		a.l.Store(&l)
	}
	return a
}

// Available reports whether zerolog.DefaultContextLogger has been configured
// with a writer and neither it nor the global level disables output.
func Available() bool {
	dl := zerolog.DefaultContextLogger
	return dl != nil &&
		dl.GetLevel() != zerolog.Disabled &&
		zerolog.GlobalLevel() != zerolog.Disabled &&
		hasOutput(*dl)
}

// hasOutput reports whether l has a writer. zerolog drops every event of a
// writer-less Logger before looking at levels, so a sampler-free trace-level
// copy is asked for an event, which is discarded unwritten. While the global
// level is Disabled no event can be built and l is assumed to have one.
func hasOutput(l zerolog.Logger) bool {
	if zerolog.GlobalLevel() == zerolog.Disabled {
		return true
	}
	e := l.Sample(nil).Level(zerolog.TraceLevel).WithLevel(zerolog.ErrorLevel)
	if e == nil {
		return false
	}
	e.Discard()
	return true
}

// SetLevel sets the level trace lines are written at.
func (a *Adapter) SetLevel(label string) { a.level.Set(label) }

// Level returns the label last passed to SetLevel.
func (a *Adapter) Level() string { return a.level.Label() }

func (a *Adapter) IsEnabled() bool {
	_, _, ok := a.enabledLevel()
	return ok
}

// Log writes message verbatim.
// Fast path: drop early if below the logger's level (no Event allocation).
func (a *Adapter) Log(message string) {
	l, zlvl, ok := a.enabledLevel()
	if !ok {
		return
	}
	l.WithLevel(zlvl).Msg(message)
}

// SetMinLevel swaps in a copy of the bound logger with a new threshold.
func (a *Adapter) SetMinLevel(label string) {
	cur := a.l.Load()
	if cur == nil {
		return
	}
	l := cur.Level(mapLevel(xtrace.RankOf(label)))
	a.l.Store(&l)
}

func (a *Adapter) enabledLevel() (*zerolog.Logger, zerolog.Level, bool) {
	l := a.l.Load()
	if l == nil {
		return nil, zerolog.NoLevel, false
	}
	lvl := a.level.Level()
	if lvl == xtrace.LevelOff {
		return nil, zerolog.NoLevel, false
	}
	zlvl := mapLevel(lvl)
	if zlvl < l.GetLevel() || zlvl < zerolog.GlobalLevel() {
		return nil, zlvl, false
	}
	return l, zlvl, true
}

// mapLevel converts xtrace.Level to zerolog.Level.
// xtrace.LevelFatal is mapped to Error to avoid zerolog.Fatal() (which would exit the process).
func mapLevel(l xtrace.Level) zerolog.Level {
	switch {
	case l <= xtrace.LevelTrace:
		return zerolog.TraceLevel
	case l <= xtrace.LevelDebug:
		return zerolog.DebugLevel
	case l <= xtrace.LevelInfo:
		return zerolog.InfoLevel
	case l <= xtrace.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
