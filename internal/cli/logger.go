package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vburojevic/deskbell/internal/output"
)

// newLogger builds the diagnostic logger: console encoding on w, Info level,
// Debug with verbose.
func newLogger(w io.Writer, verbose bool) *zap.SugaredLogger {
	lvl := zap.InfoLevel
	if verbose {
		lvl = zap.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.CallerKey = ""
	if output.IsTerminal(w) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core).Sugar()
}
