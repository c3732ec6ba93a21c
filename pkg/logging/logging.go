package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/config"
)

// defaultEncConfig stores default zapcore.EncoderConfig for logging package.
var defaultEncConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// NewLogger returns a logger writing to stderr.
// Stdout is reserved for the MCP STDIO transport and must never be logged to.
func NewLogger(c config.Logging) *zap.SugaredLogger {
	return NewLoggerTo(os.Stderr, c)
}

// NewLoggerTo returns a logger writing to w with the encoder selected by c.Output.
func NewLoggerTo(w io.Writer, c config.Logging) *zap.SugaredLogger {
	var encoder zapcore.Encoder
	switch c.Output {
	case config.JSON:
		encoder = zapcore.NewJSONEncoder(defaultEncConfig)
	default:
		encoder = zapcore.NewConsoleEncoder(defaultEncConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(c.ZapLevel()))

	return zap.New(core, zap.AddCaller()).Sugar()
}
