// Package logging builds the zap logger used for diagnostics. User-facing
// progress goes through internal/output; the logger carries command traces
// and swallowed failures.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level picks the minimum level for the verbose and quiet flags
func Level(verbose, quiet bool) zapcore.Level {
	switch {
	case verbose:
		return zapcore.DebugLevel
	case quiet:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a console-encoded logger writing to w
func New(w io.Writer, verbose, quiet bool) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.StacktraceKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(w)),
		Level(verbose, quiet),
	)
	return zap.New(core)
}
