package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// ANSI colors for log lines
const (
	grey          = "\033[38;5;240m"
	boldLightGrey = "\033[1;38;5;240m"
	red           = "\033[38;5;9m"
	yellow        = "\033[38;5;11m"
	reset         = "\033[0m"
)

// fullLineColorLevelEncoder colors the entire output line based on log level
func fullLineColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch l {
	case zapcore.DebugLevel:
		color = grey
	case zapcore.InfoLevel:
		color = boldLightGrey
	case zapcore.WarnLevel:
		color = yellow
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		color = red
	default:
		color = reset
	}
	enc.AppendString(color + l.CapitalString())
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewLogger creates a console logger writing to stderr. Lines are colored
// when stderr is a terminal. The level is warn, info with verbose and debug
// with debug, which also adds the caller.
func NewLogger(stderr io.Writer, verbose, debug bool) *zap.SugaredLogger {
	if stderr == nil {
		stderr = os.Stderr
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.LevelKey = "L"
	encCfg.NameKey = "N"
	encCfg.FunctionKey = ""
	encCfg.MessageKey = "M"
	encCfg.StacktraceKey = "S"
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.ConsoleSeparator = " "
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if isTerminal(stderr) {
		encCfg.EncodeLevel = fullLineColorLevelEncoder
		encCfg.LineEnding = reset + zapcore.DefaultLineEnding
	}

	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		level.SetLevel(zapcore.InfoLevel)
	}
	var opts []zap.Option
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		encCfg.CallerKey = "C"
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		encCfg.CallerKey = ""
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(stderr), level)
	return zap.New(core, opts...).Sugar()
}
