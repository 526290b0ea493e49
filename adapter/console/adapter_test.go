package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
)

func TestConsole_NewIsInert(t *testing.T) {
	t.Parallel()

	a := New()
	if a.IsEnabled() {
		t.Fatal("inert console must report disabled")
	}
	a.Log("x") // before SetLevel
	a.SetLevel("ERROR")
	if a.IsEnabled() || a.IsEnabled() {
		t.Fatal("inert console must stay disabled after SetLevel")
	}
	a.Log("y")
	if s := a.Stats(); s.Written != 0 || s.Failed != 0 {
		t.Fatalf("inert console touched its sink: %+v", s)
	}

	if NewWriter(nil).IsEnabled() {
		t.Fatal("nil writer must yield an inert adapter")
	}
}

func TestConsole_WritesLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewWriter(&buf)
	if !a.IsEnabled() {
		t.Fatal("default trace level must pass the default threshold")
	}
	a.Log("enter: parse()")
	a.Log("leave: parse()")

	if got, want := buf.String(), "enter: parse()\nleave: parse()\n"; got != want {
		t.Fatalf("output mismatch:\n got %q\nwant %q", got, want)
	}
	if s := a.Stats(); s.Written != 2 {
		t.Fatalf("written counter: %+v", s)
	}
	a.ResetStats()
	if s := a.Stats(); s.Written != 0 {
		t.Fatalf("reset failed: %+v", s)
	}
}

func TestConsole_Threshold(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewWriter(&buf, WithMinLevel("INFO"))

	a.Log("suppressed") // DEBUG < INFO
	if a.IsEnabled() || buf.Len() != 0 {
		t.Fatalf("debug must be suppressed: %q", buf.String())
	}

	a.SetLevel("error")
	a.Log("kept")
	if buf.String() != "kept\n" {
		t.Fatalf("expected kept line, got %q", buf.String())
	}

	a.SetLevel("OFF")
	a.Log("dropped")
	if a.IsEnabled() || buf.String() != "kept\n" {
		t.Fatalf("OFF must disable: %q", buf.String())
	}

	a.SetLevel("whatever") // unknown ranks as DEBUG
	if a.Level() != "whatever" || a.IsEnabled() {
		t.Fatalf("unknown label: %q enabled=%v", a.Level(), a.IsEnabled())
	}
}

func TestConsole_TimestampAndPrefix(t *testing.T) {
	old := xclock.Default()
	defer xclock.SetDefault(old)
	ft := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)
	xclock.SetDefault(xclock.NewFrozen(ft))

	var buf bytes.Buffer
	a := NewWriter(&buf, WithTimestamp(time.RFC3339), WithPrefix("[trace] "))
	a.Log("hello")

	if got, want := buf.String(), "2025-01-01T12:30:00Z [trace] hello\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) { panic("closed") }

func TestConsole_WriteFailuresNeverPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var got []error
	h := func(err error) { got = append(got, err) }

	NewWriter(failingWriter{err: boom}, WithErrorHandler(h)).Log("x")
	NewWriter(shortWriter{}, WithErrorHandler(h)).Log("x")
	p := NewWriter(panicWriter{}, WithErrorHandler(h))
	p.Log("x")
	p.Log("again") // lock released after the recovered panic

	if len(got) != 4 {
		t.Fatalf("expected 4 reported errors, got %v", got)
	}
	if !errors.Is(got[0], boom) {
		t.Fatalf("first error: %v", got[0])
	}
	if !strings.Contains(got[2].Error(), "closed") {
		t.Fatalf("panic not reported: %v", got[2])
	}
	if s := p.Stats(); s.Failed != 2 || s.Written != 0 {
		t.Fatalf("stats: %+v", s)
	}

	// nil handler option restores the default reporter.
	a := NewWriter(shortWriter{}, WithErrorHandler(nil))
	if a.onError == nil {
		t.Fatal("default handler not restored")
	}
}

// flakyWriter fails its first write and records the rest.
type flakyWriter struct {
	failed bool
	b      bytes.Buffer
}

func (f *flakyWriter) Write(p []byte) (int, error) {
	if !f.failed {
		f.failed = true
		return 0, errors.New("disk full")
	}
	return f.b.Write(p)
}

func finishesWithin(t *testing.T, d time.Duration, f func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		f()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("call did not return within %s", d)
	}
}

func TestConsole_ErrorHandlerMayLogAgain(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{}
	var a *Adapter
	a = NewWriter(w, WithErrorHandler(func(err error) {
		a.Log("trace sink: " + err.Error())
	}))

	finishesWithin(t, 2*time.Second, func() { a.Log("lost") })

	if got, want := w.b.String(), "trace sink: disk full\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if s := a.Stats(); s.Failed != 1 || s.Written != 1 {
		t.Fatalf("stats: %+v", s)
	}
}

func TestConsole_PanickingErrorHandlerIsContained(t *testing.T) {
	t.Parallel()

	handler := func(error) { panic("handler broke") }
	for _, w := range []io.Writer{failingWriter{err: errors.New("boom")}, panicWriter{}} {
		a := NewWriter(w, WithErrorHandler(handler))
		finishesWithin(t, 2*time.Second, func() {
			a.Log("x")
			a.Log("y") // lock released after both panics
		})
		if s := a.Stats(); s.Failed != 2 {
			t.Fatalf("stats: %+v", s)
		}
	}
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func TestConsole_ConcurrentLinesDoNotInterleave(t *testing.T) {
	t.Parallel()

	var out lockedBuffer
	a := NewWriter(&out)
	msgs := []string{"aaaaaaaa", "bbbbbbbb", "cccccccc", "dddddddd"}

	var wg sync.WaitGroup
	for _, m := range msgs {
		wg.Add(1)
		go func(m string) {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				a.Log(m)
			}
		}(m)
	}
	levels := []string{"INFO", "ERROR", "DEBUG"}
	for i := 0; i < 300; i++ {
		a.SetLevel(levels[i%len(levels)])
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.b.String(), "\n"), "\n")
	if len(lines) != len(msgs)*250 {
		t.Fatalf("expected %d lines, got %d", len(msgs)*250, len(lines))
	}
	for _, l := range lines {
		if len(l) != 8 || strings.Count(l, l[:1]) != 8 {
			t.Fatalf("interleaved line %q", l)
		}
	}
	if got := a.Level(); got != "INFO" && got != "ERROR" && got != "DEBUG" {
		t.Fatalf("final level %q", got)
	}
}
