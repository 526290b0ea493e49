package zapadapter

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

// Config is an explicit, code-first configuration for zap + xtrace.
type Config struct {
	Writer         io.Writer // default: os.Stdout
	MinLevel       string    // backend threshold; default "DEBUG"
	TraceLevel     string    // level trace lines are written at; default xtrace.DefaultLabel
	Console        bool      // console encoder instead of JSON
	EncoderConfig  zapcore.EncoderConfig
	Caller         bool
	CallerSkip     int  // frames to skip when resolving caller; default 2
	ReplaceGlobals bool // also install the logger as zap.L() so Available reports true
}

// Build creates the zap logger and adapter described by cfg.
// Timestamps come from xclock.Default() so frozen clocks are respected.
func Build(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.Caller && cfg.CallerSkip <= 0 {
		cfg.CallerSkip = 2
	}

	encCfg := cfg.EncoderConfig
	if encCfg.MessageKey == "" && encCfg.LevelKey == "" && encCfg.TimeKey == "" {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	minLabel := cfg.MinLevel
	if minLabel == "" {
		minLabel = xtrace.DefaultLabel
	}
	al := zap.NewAtomicLevelAt(toZapLevel(xtrace.RankOf(minLabel)))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)

	opts := []zap.Option{
		zap.WithClock(xclockAdapter{}),
		zap.AddStacktrace(zapcore.FatalLevel + 1), // effectively off
	}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(cfg.CallerSkip))
	}
	zl := zap.New(core, opts...)
	if cfg.ReplaceGlobals {
		zap.ReplaceGlobals(zl)
	}

	ad := NewWithAtomicLevel(zl, &al)
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

// xclockAdapter satisfies zapcore.Clock from the process clock.
type xclockAdapter struct{}

func (xclockAdapter) Now() time.Time                         { return xclock.Now() }
func (xclockAdapter) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }
