package xtrace

import "errors"

// ErrNoBackend is returned by Builder.Build when no candidate and no fallback
// produced a Logger.
var ErrNoBackend = errors.New("xtrace: no backend available")

// Names reported by SelectName for the last-resort choices.
const (
	NameFallback = "fallback"
	NameDiscard  = "discard"
)

// Candidate describes one backend family the selector may pick.
// A nil Probe means the backend is always available.
type Candidate struct {
	Name  string
	Probe func() bool
	New   func() Logger
}

// Builder separates the priority list from the selection (Builder pattern).
type Builder struct {
	candidates []Candidate
	fallback   func() Logger
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends candidates in priority order.
func (b *Builder) Add(cs ...Candidate) *Builder {
	b.candidates = append(b.candidates, cs...)
	return b
}

// WithFallback sets the constructor used when no candidate is available.
func (b *Builder) WithFallback(f func() Logger) *Builder {
	b.fallback = f
	return b
}

// Select returns the first available candidate's Logger, then the fallback,
// then Discard. It never fails.
func (b *Builder) Select() Logger {
	l, _ := b.SelectName()
	return l
}

// SelectName is Select that also reports which candidate won.
func (b *Builder) SelectName() (Logger, string) {
	for _, c := range b.candidates {
		if l := tryCandidate(c); l != nil {
			return l, c.Name
		}
	}
	if l := tryConstruct(b.fallback); l != nil {
		return l, NameFallback
	}
	return Discard, NameDiscard
}

// Build is the strict form of Select for callers that want to know when
// selection degraded all the way to Discard.
func (b *Builder) Build() (Logger, error) {
	l, name := b.SelectName()
	if name == NameDiscard {
		return l, ErrNoBackend
	}
	return l, nil
}

// tryCandidate treats a panicking probe or constructor as an unavailable backend.
func tryCandidate(c Candidate) (l Logger) {
	defer func() {
		if recover() != nil {
			l = nil
		}
	}()
	if c.Probe != nil && !c.Probe() {
		return nil
	}
	return tryConstruct(c.New)
}

func tryConstruct(f func() Logger) (l Logger) {
	if f == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			l = nil
		}
	}()
	return f()
}
