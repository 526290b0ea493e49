package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

// Config is an explicit, code-first configuration for zerolog + xtrace.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MinLevel          string    // backend threshold; default "DEBUG"
	TraceLevel        string    // level trace lines are written at; default xtrace.DefaultLabel
	Console           bool      // pretty console output instead of JSON
	ConsoleTimeFormat string    // only used if Console==true; default time.RFC3339Nano
	Timestamp         bool      // add a "time" field taken from xclock
	SetDefault        bool      // also install as zerolog.DefaultContextLogger so Available reports true
}

// Build creates the zerolog logger and adapter described by cfg.
func Build(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, NoColor: true}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	minLabel := cfg.MinLevel
	if minLabel == "" {
		minLabel = xtrace.DefaultLabel
	}
	zl = zl.Level(mapLevel(xtrace.RankOf(minLabel)))

	if cfg.Timestamp {
		zl = zl.Hook(clockHook{})
	}
	if cfg.SetDefault {
		dl := zl
		zerolog.DefaultContextLogger = &dl
	}

	ad := NewWithLogger(zl)
	if cfg.TraceLevel != "" {
		ad.SetLevel(cfg.TraceLevel)
	}
	return ad
}

// Use builds the adapter, installs it as the global xtrace logger and returns it.
func Use(cfg Config) *Adapter {
	ad := Build(cfg)
	xtrace.SetGlobal(ad)
	return ad
}

// clockHook stamps events with xclock so frozen clocks are respected.
type clockHook struct{}

func (clockHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Time(zerolog.TimestampFieldName, xclock.Now())
}
