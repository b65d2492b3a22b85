package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"release-manager/internal/config"
)

var defaultLogger *zap.SugaredLogger

// LogFilePath is where the application log is written.
func LogFilePath() (string, error) {
	stateDir, err := config.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "relm.log"), nil
}

// setupLogging builds a logger writing JSON lines to the log file and, when
// verbose, human-readable lines to stderr.
func setupLogging(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core

	logFilePath, err := LogFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error determining log file path: %v. File logging disabled.\n", err)
	} else if _, err := config.EnsureStateDir(); err != nil {
		fmt.Fprintf(os.Stderr, "%v. File logging disabled.\n", err)
	} else {
		// Open file for appending (0640: user rw, group r, others ---)
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v. File logging disabled.\n", logFilePath, err)
		} else {
			encCfg := zap.NewProductionEncoderConfig()
			encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level))
		}
	}

	if verbose {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level))
	}

	if len(cores) == 0 {
		return nil, fmt.Errorf("no log output could be initialized")
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// InitLogger initializes the package logger. It should be called once at startup.
func InitLogger(verbose bool) {
	l, err := setupLogging(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger initialization failed: %v. Falling back to stderr.\n", err)
		l = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			zapcore.WarnLevel,
		))
	}
	defaultLogger = l.Sugar()
}

// SetLogger replaces the package logger, e.g. with zap.NewNop() in tests.
func SetLogger(l *zap.Logger) {
	defaultLogger = l.Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	if defaultLogger != nil {
		_ = defaultLogger.Sync()
	}
}

// checkLogger ensures the logger is initialized before use, preventing nil panics.
func checkLogger() {
	if defaultLogger == nil {
		InitLogger(false)
	}
}

// Info logs an informational message with key-value pairs.
func Info(msg string, keysAndValues ...any) {
	checkLogger()
	defaultLogger.Infow(msg, keysAndValues...)
}

func Infof(format string, v ...any) {
	checkLogger()
	defaultLogger.Infof(format, v...)
}

func Error(msg string, keysAndValues ...any) {
	checkLogger()
	defaultLogger.Errorw(msg, keysAndValues...)
}

func Errorf(format string, v ...any) {
	checkLogger()
	defaultLogger.Errorf(format, v...)
}

func Debug(msg string, keysAndValues ...any) {
	checkLogger()
	defaultLogger.Debugw(msg, keysAndValues...)
}

func Debugf(format string, v ...any) {
	checkLogger()
	defaultLogger.Debugf(format, v...)
}

func Warn(msg string, keysAndValues ...any) {
	checkLogger()
	defaultLogger.Warnw(msg, keysAndValues...)
}

func Warnf(format string, v ...any) {
	checkLogger()
	defaultLogger.Warnf(format, v...)
}
