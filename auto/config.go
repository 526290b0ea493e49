package auto

import (
	"github.com/caarlos0/env/v11"

	"github.com/trickstertwo/xtrace"
)

// Config drives default backend selection.
//
// Env:
//
//	XTRACE_LEVEL=<label>             : trace level handed to the chosen adapter (default DEBUG)
//	XTRACE_MIN_LEVEL=<label>         : backend threshold for adapters that support it
//	XTRACE_BACKENDS=zap,zerolog,...  : restrict or reorder the priority list
//	XTRACE_CONSOLE=true              : allow the console backend to write to stdout
//	XTRACE_CONSOLE_MIN_LEVEL=<label> : console threshold (default TRACE)
//	XTRACE_CONSOLE_TIMEFORMAT=...    : prefix console lines with a timestamp in this layout
//	XTRACE_CONSOLE_PREFIX=...        : prefix console lines with this text
type Config struct {
	Level             string   `env:"XTRACE_LEVEL" envDefault:"DEBUG"`
	MinLevel          string   `env:"XTRACE_MIN_LEVEL"`
	Backends          []string `env:"XTRACE_BACKENDS" envSeparator:","`
	Console           bool     `env:"XTRACE_CONSOLE"`
	ConsoleMinLevel   string   `env:"XTRACE_CONSOLE_MIN_LEVEL" envDefault:"TRACE"`
	ConsoleTimeFormat string   `env:"XTRACE_CONSOLE_TIMEFORMAT"`
	ConsolePrefix     string   `env:"XTRACE_CONSOLE_PREFIX"`
}

// DefaultConfig is the configuration used when the environment sets nothing.
func DefaultConfig() Config {
	return Config{Level: xtrace.DefaultLabel, ConsoleMinLevel: "TRACE"}
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	return env.ParseAs[Config]()
}

// LoadConfigFrom reads Config from the given variables instead of the process environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return env.ParseAsWithOptions[Config](env.Options{Environment: environ})
}
