package logger

import (
	"io"
	"time"

	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build a console logger writing to w at the given level. Level names are
// colored when color is set.
func New(w io.Writer, level zapcore.Level, color bool) *zap.Logger {
	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if color {
		config.EncodeLevel = colorLevelEncoder
	}

	encoder := zapcore.NewConsoleEncoder(config)
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var name aurora.Value
	switch level {
	case zapcore.DebugLevel:
		name = aurora.Cyan(level.CapitalString())
	case zapcore.InfoLevel:
		name = aurora.Green(level.CapitalString())
	case zapcore.WarnLevel:
		name = aurora.Yellow(level.CapitalString())
	case zapcore.ErrorLevel:
		name = aurora.Red(level.CapitalString())
	default:
		name = aurora.Magenta(level.CapitalString())
	}
	enc.AppendString(name.String())
}
