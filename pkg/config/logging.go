package config

import (
	"go.uber.org/zap/zapcore"
)

// Log outputs.
const (
	CONSOLE = "console"
	JSON    = "json"
)

// Logging defines Logger configuration.
type Logging struct {
	Level  string `yaml:"level" env:"LEVEL" default:"info"`
	Output string `yaml:"output" env:"OUTPUT" default:"console"`
	// Protocol enables dumping of the raw MCP messages exchanged over STDIO.
	Protocol bool `yaml:"protocol" env:"PROTOCOL"`
}

// Validate checks constraints in the supplied Logging configuration and returns an error if they are violated.
func (l *Logging) Validate() error {
	var lvl zapcore.Level
	if err := lvl.Set(l.Level); err != nil {
		return configError("invalid log level %q: %s", l.Level, err)
	}

	switch l.Output {
	case CONSOLE, JSON:
	default:
		return configError("invalid log output %q, expected %q or %q", l.Output, CONSOLE, JSON)
	}

	return nil
}

// ZapLevel returns the configured level. It must only be called after Validate succeeded.
func (l *Logging) ZapLevel() zapcore.Level {
	var lvl zapcore.Level
	_ = lvl.Set(l.Level)

	return lvl
}
