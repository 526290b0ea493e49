package zapadapter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtrace"
)

// Adapter bridges xtrace to go.uber.org/zap.
//
// Every trace line is written at the adapter's trace level; zap's own core
// decides whether that level is enabled. A no-op zap logger (the zap default
// before zap.ReplaceGlobals) makes the adapter inert.
//
// Optional behavior:
//   - SetMinLevel leverages zap.AtomicLevel when provided at construction time
//     to adjust the backend's threshold. Without one it is a no-op.
type Adapter struct {
	l     *zap.Logger
	al    *zap.AtomicLevel // optional, enables SetMinLevel
	level xtrace.LevelVar
}

// New binds the adapter to zap's global logger as it is right now.
func New() *Adapter {
	return NewWithLogger(zap.L())
}

// NewWithLogger binds an explicit zap logger. A nil logger yields an inert adapter.
func NewWithLogger(l *zap.Logger) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{l: l}
}

// NewWithAtomicLevel also wires a zap.AtomicLevel so SetMinLevel can
// dynamically adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Adapter {
	a := NewWithLogger(l)
	a.al = al
	return a
}

// Available reports whether zap's global logger has been configured, i.e.
// its core accepts at least one level.
func Available() bool {
	return enabledAtAnyLevel(zap.L().Core())
}

func enabledAtAnyLevel(c zapcore.Core) bool {
	for lvl := zapcore.DebugLevel; lvl <= zapcore.FatalLevel; lvl++ {
		if c.Enabled(lvl) {
			return true
		}
	}
	return false
}

// SetLevel sets the level trace lines are written at.
func (a *Adapter) SetLevel(label string) { a.level.Set(label) }

// Level returns the label last passed to SetLevel.
func (a *Adapter) Level() string { return a.level.Label() }

func (a *Adapter) IsEnabled() bool {
	lvl := a.level.Level()
	if lvl == xtrace.LevelOff {
		return false
	}
	return a.l.Core().Enabled(toZapLevel(lvl))
}

// Log writes message verbatim.
// Uses Logger.Check so a disabled level costs a single comparison.
func (a *Adapter) Log(message string) {
	lvl := a.level.Level()
	if lvl == xtrace.LevelOff {
		return
	}
	if ce := a.l.Check(toZapLevel(lvl), message); ce != nil {
		ce.Write()
	}
}

// SetMinLevel updates the backend filter when an AtomicLevel was supplied.
func (a *Adapter) SetMinLevel(label string) {
	if a.al == nil {
		return
	}
	a.al.SetLevel(toZapLevel(xtrace.RankOf(label)))
}

// Sync flushes any buffered zap output.
func (a *Adapter) Sync() error { return a.l.Sync() }

// toZapLevel maps FATAL to Error so library code never exits the process.
func toZapLevel(l xtrace.Level) zapcore.Level {
	switch {
	case l <= xtrace.LevelTrace:
		return zapcore.DebugLevel // zap has no trace; map to debug
	case l <= xtrace.LevelDebug:
		return zapcore.DebugLevel
	case l <= xtrace.LevelInfo:
		return zapcore.InfoLevel
	case l <= xtrace.LevelWarn:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}
