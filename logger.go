package xtrace

import "sync/atomic"

// Logger is the backend Strategy every adapter implements.
//
// Messages arrive fully formatted. SetLevel picks the severity trace lines are
// emitted at; whether that severity reaches the sink is up to the backend.
// None of the methods may panic or report failure to the caller: a message
// that is not emitted is dropped silently.
type Logger interface {
	SetLevel(label string)
	IsEnabled() bool
	Log(message string)
}

// Discard is the inert Logger used when nothing else is available.
var Discard Logger = discard{}

type discard struct{}

func (discard) SetLevel(string) {}
func (discard) IsEnabled() bool { return false }
func (discard) Log(string)      {}

type loggerBox struct{ l Logger }

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[loggerBox]

// SetGlobal installs l as the process-wide Logger. A nil l installs Discard.
func SetGlobal(l Logger) {
	if l == nil {
		l = Discard
	}
	global.Store(&loggerBox{l: l})
}

// L returns the process-wide Logger, or Discard if none was installed.
func L() Logger {
	if b := global.Load(); b != nil {
		return b.l
	}
	return Discard
}
