package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar = newConsoleLogger(zapcore.WarnLevel).Sugar()

	DebugEnabled = false

	logFile *os.File
)

// InitLogging sets up logging based on configuration.
// Warnings and errors always reach stderr; debug mode lowers the level and
// mirrors every entry as JSON into logPath.
func InitLogging(debugMode bool, logPath string) error {
	DebugEnabled = debugMode

	level := zapcore.WarnLevel
	if DebugEnabled {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{consoleCore(level)}

	if DebugEnabled && logPath != "" {
		logDir := filepath.Dir(logPath)
		err := os.MkdirAll(logDir, 0o755)
		if err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		logFile = f
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), zapcore.DebugLevel))
	}

	sugar = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()

	return nil
}

// SetLogger replaces the active logger. Used by tests to install observers.
func SetLogger(l *zap.Logger) {
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// Close flushes buffered entries and closes the log file if open.
func Close() {
	_ = sugar.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Infof(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

// Errorf logs an error message.
func Errorf(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debugf(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

func consoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
}

func newConsoleLogger(level zapcore.Level) *zap.Logger {
	return zap.New(consoleCore(level), zap.AddCaller(), zap.AddCallerSkip(1))
}
