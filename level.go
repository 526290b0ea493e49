package xtrace

import (
	"strings"
	"sync/atomic"
)

// Level mirrors slog numeric semantics and extends with Trace (-8), Fatal (12)
// and Off, which disables emission entirely.
type Level int8

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelFatal Level = 12
	LevelOff   Level = 127
)

// DefaultLabel is the trace level every adapter starts with.
const DefaultLabel = "DEBUG"

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a severity label to its rank. Matching ignores case and
// surrounding spaces. ok is false for labels outside the rank table.
func ParseLevel(label string) (lvl Level, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "TRACE":
		return LevelTrace, true
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "FATAL":
		return LevelFatal, true
	case "OFF", "DISABLED", "NONE":
		return LevelOff, true
	default:
		return LevelDebug, false
	}
}

// RankOf is ParseLevel without the ok flag; unknown labels rank as LevelDebug.
func RankOf(label string) Level {
	lvl, _ := ParseLevel(label)
	return lvl
}

type levelState struct {
	label string
	level Level
}

var defaultLevelState = &levelState{label: DefaultLabel, level: LevelDebug}

// LevelVar holds an adapter's trace level. The label and its rank are
// published together, so a reader racing with Set sees either the old pair or
// the new one. The zero value reports DefaultLabel.
type LevelVar struct {
	p atomic.Pointer[levelState]
}

// Set stores label verbatim; its rank comes from ParseLevel.
func (v *LevelVar) Set(label string) {
	v.p.Store(&levelState{label: label, level: RankOf(label)})
}

func (v *LevelVar) load() *levelState {
	if s := v.p.Load(); s != nil {
		return s
	}
	return defaultLevelState
}

// Level returns the current rank.
func (v *LevelVar) Level() Level { return v.load().level }

// Label returns the label last passed to Set.
func (v *LevelVar) Label() string { return v.load().label }

// Load returns label and rank from the same update.
func (v *LevelVar) Load() (string, Level) {
	s := v.load()
	return s.label, s.level
}
