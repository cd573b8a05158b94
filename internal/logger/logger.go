// Package logger holds the process-wide zap logger. Entries go to the
// console, to a rotating file, or to both.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log and Sugar discard everything until Init runs, so packages and tests
// may log unconditionally.
var (
	Log   = zap.NewNop()
	Sugar = Log.Sugar()
)

// FileConfig controls the rotating log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig keeps a week of compressed 20 MB files at path.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

func (c FileConfig) writer() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
		LocalTime:  true,
	}
}

// Init logs to the console and, when logFile is set, to a rotating file.
func Init(level string, logFile string) error {
	var file FileConfig
	if logFile != "" {
		file = DefaultFileConfig(logFile)
	}
	return InitWithFileConfig(level, file, true)
}

// InitWithFileConfig replaces the global logger. A zero file config skips
// the file; console false keeps stdout free, which tests and the terminal
// preview need.
func InitWithFileConfig(level string, file FileConfig, console bool) error {
	lvl := ParseLevel(level)

	var cores []zapcore.Core
	if console {
		cores = append(cores, zapcore.NewCore(newEncoder(true), zapcore.Lock(os.Stdout), lvl))
	}
	if file.Path != "" {
		cores = append(cores, zapcore.NewCore(newEncoder(false), zapcore.AddSync(file.writer()), lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

// newEncoder returns a console-format encoder. Terminals get coloured
// levels and a short clock; files get plain levels and ISO8601 times.
func newEncoder(terminal bool) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
	if terminal {
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

// Named returns a child of the global logger tagged with a component name.
// The child is bound to the logger current at call time; components created
// before Init keep discarding output.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// ParseLevel accepts zap level names in either case. Anything else,
// including the empty string, means info.
func ParseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs at debug level on the global logger.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs at info level.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs at error level.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
