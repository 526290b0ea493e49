// Package console writes trace lines straight to standard output (or any
// io.Writer). It is the last backend the selector falls back to, so
// constructing it never fails and New() with no writer is always safe.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

// ErrorHandler receives write failures; they never reach the caller of Log.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "xtrace console error: %v\n", err) }

// maxRetainedBuf caps the line buffer kept between writes.
const maxRetainedBuf = 64 * 1024

// Adapter writes one line per Log call. Lines from concurrent callers never
// interleave.
type Adapter struct {
	// immutable after construction
	w        io.Writer // nil: inert
	min      xtrace.Level
	prefix   string
	tsLayout string
	onError  ErrorHandler

	level xtrace.LevelVar
	st    stats

	mu  sync.Mutex
	buf []byte
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithMinLevel sets the threshold the trace level must reach. Default TRACE.
func WithMinLevel(label string) Option {
	return func(a *Adapter) { a.min = xtrace.RankOf(label) }
}

// WithTimestamp prefixes each line with xclock.Now() formatted by layout.
func WithTimestamp(layout string) Option {
	return func(a *Adapter) { a.tsLayout = layout }
}

// WithPrefix writes p before every message.
func WithPrefix(p string) Option {
	return func(a *Adapter) { a.prefix = p }
}

// WithErrorHandler overrides the default stderr reporter. nil restores it.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Adapter) {
		if h == nil {
			h = defaultErrorHandler
		}
		a.onError = h
	}
}

// New returns the inert console adapter: no writer is bound, IsEnabled is
// always false and Log discards everything.
func New() *Adapter {
	return &Adapter{min: xtrace.LevelTrace, onError: defaultErrorHandler}
}

// NewWriter returns an adapter writing to w. A nil w yields an inert adapter.
func NewWriter(w io.Writer, opts ...Option) *Adapter {
	a := New()
	a.w = w
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stdout returns an adapter writing to os.Stdout.
func Stdout(opts ...Option) *Adapter {
	return NewWriter(os.Stdout, opts...)
}

// SetLevel sets the trace level compared against the threshold.
func (a *Adapter) SetLevel(label string) { a.level.Set(label) }

// Level returns the label last passed to SetLevel.
func (a *Adapter) Level() string { return a.level.Label() }

func (a *Adapter) IsEnabled() bool {
	if a.w == nil {
		return false
	}
	lvl := a.level.Level()
	return lvl != xtrace.LevelOff && lvl >= a.min
}

// Log writes message followed by a newline.
func (a *Adapter) Log(message string) {
	if !a.IsEnabled() {
		return
	}
	// Reported outside the lock so the handler may log again.
	if err := a.write(message); err != nil {
		a.fail(err)
	}
}

func (a *Adapter) write(message string) (err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer func() {
		// A panicking writer is reported like any other write failure.
		if r := recover(); r != nil {
			err = fmt.Errorf("writer panic: %v", r)
		}
	}()

	b := a.buf[:0]
	if a.tsLayout != "" {
		b = xclock.Now().AppendFormat(b, a.tsLayout)
		b = append(b, ' ')
	}
	b = append(b, a.prefix...)
	b = append(b, message...)
	b = append(b, '\n')

	n, werr := a.w.Write(b)

	if cap(b) <= maxRetainedBuf {
		a.buf = b[:0]
	} else {
		a.buf = nil
	}

	switch {
	case werr != nil:
		return werr
	case n < len(b):
		return io.ErrShortWrite
	}
	a.st.written.Add(1)
	return nil
}

// fail counts err and hands it to the error handler. A panicking handler is
// swallowed.
func (a *Adapter) fail(err error) {
	a.st.failed.Add(1)
	if a.onError == nil {
		return
	}
	defer func() { _ = recover() }()
	a.onError(err)
}

// Stats returns a snapshot of internal counters.
func (a *Adapter) Stats() StatsSnapshot { return a.st.snapshot() }

// ResetStats resets internal counters.
func (a *Adapter) ResetStats() { a.st.reset() }
