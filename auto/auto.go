// Package auto picks the trace backend for the process: zap if configured,
// then zerolog, then the console adapter.
//
// Usage, once at startup:
//
//	auto.Use()
//	xtrace.Log("ready")
package auto

import (
	"os"
	"slices"
	"strings"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/adapter/console"
	zapadapter "github.com/trickstertwo/xtrace/adapter/zap"
	zerologadapter "github.com/trickstertwo/xtrace/adapter/zerolog"
	"github.com/trickstertwo/xtrace/listutil"
)

// Backend names, in default priority order.
const (
	NameZap     = "zap"
	NameZerolog = "zerolog"
	NameConsole = "console"
)

// DefaultOrder is the fixed probe order.
var DefaultOrder = listutil.Of(NameZap, NameZerolog, NameConsole)

// Candidates returns the candidate list for cfg. cfg.Backends restricts and
// reorders it; unknown or repeated names are skipped.
func Candidates(cfg Config) listutil.List[xtrace.Candidate] {
	order := DefaultOrder
	if len(cfg.Backends) > 0 {
		order = normalize(cfg.Backends)
	}

	out := make([]xtrace.Candidate, 0, order.Len())
	for name := range order.Values() {
		switch name {
		case NameZap:
			out = append(out, xtrace.Candidate{
				Name:  NameZap,
				Probe: zapadapter.Available,
				New:   func() xtrace.Logger { return zapadapter.New() },
			})
		case NameZerolog:
			out = append(out, xtrace.Candidate{
				Name:  NameZerolog,
				Probe: zerologadapter.Available,
				New:   func() xtrace.Logger { return zerologadapter.New() },
			})
		case NameConsole:
			out = append(out, xtrace.Candidate{
				Name:  NameConsole,
				Probe: func() bool { return cfg.Console },
				New:   func() xtrace.Logger { return newConsole(cfg) },
			})
		}
	}
	return listutil.Of(out...)
}

func normalize(names []string) listutil.List[string] {
	seen := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if DefaultOrder.Index(func(s string) bool { return s == n }) < 0 || slices.Contains(seen, n) {
			continue
		}
		seen = append(seen, n)
	}
	return listutil.Of(seen...)
}

func newConsole(cfg Config) *console.Adapter {
	opts := []console.Option{console.WithMinLevel(cfg.ConsoleMinLevel)}
	if cfg.ConsoleTimeFormat != "" {
		opts = append(opts, console.WithTimestamp(cfg.ConsoleTimeFormat))
	}
	if cfg.ConsolePrefix != "" {
		opts = append(opts, console.WithPrefix(cfg.ConsolePrefix))
	}
	return console.NewWriter(os.Stdout, opts...)
}

// minLevelSetter is an optional interface adapters implement to accept a
// backend threshold (zap with an AtomicLevel, zerolog).
type minLevelSetter interface {
	SetMinLevel(label string)
}

// Select probes the candidates for cfg in order and falls back to the inert
// console adapter. The winner receives cfg.Level, and cfg.MinLevel when it
// supports a backend threshold. It never fails.
func Select(cfg Config) (xtrace.Logger, string) {
	b := xtrace.NewBuilder().
		WithFallback(func() xtrace.Logger { return console.New() })
	for c := range Candidates(cfg).Values() {
		b.Add(c)
	}
	l, name := b.SelectName()
	if cfg.Level != "" {
		l.SetLevel(cfg.Level)
	}
	if ms, ok := l.(minLevelSetter); ok && cfg.MinLevel != "" {
		ms.SetMinLevel(cfg.MinLevel)
	}
	return l, name
}

// Use loads Config from the environment, selects a backend and installs it
// as the global xtrace logger. A malformed environment degrades to DefaultConfig.
func Use() xtrace.Logger {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = DefaultConfig()
	}
	return UseConfig(cfg)
}

// UseConfig is Use with an explicit Config.
func UseConfig(cfg Config) xtrace.Logger {
	l, _ := Select(cfg)
	xtrace.SetGlobal(l)
	return l
}
