// Package logger holds the process-wide zap logger shared by every DevFinds binary.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op until Initialize runs, so packages and tests can log without setup.
var Log = zap.NewNop()

// SugaredLog is the printf-style view of Log
var SugaredLog = Log.Sugar()

// Rotation settings for the JSON log file
const (
	maxFileSizeMB = 100
	maxBackups    = 5
	maxAgeDays    = 7
)

// Initialize installs a logger that writes human-readable lines to stdout and
// JSON lines to a rotated file. Empty arguments fall back to "info" and "server.log".
func Initialize(logLevel string, logFile string) error {
	if logFile == "" {
		logFile = "server.log"
	}
	if logLevel == "" {
		logLevel = "info"
	}
	level := parseLogLevel(logLevel)

	Log = zap.New(
		zapcore.NewTee(consoleCore(level), fileCore(logFile, level)),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	SugaredLog = Log.Sugar()

	Log.Info("Logger initialized",
		zap.String("level", level.String()),
		zap.String("file", logFile),
	)
	return nil
}

func consoleCore(level zapcore.Level) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
}

func fileCore(path string, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), writer, level)
}

// Close flushes buffered entries
func Close() error {
	if Log == nil {
		return nil
	}
	return Log.Sync()
}

// parseLogLevel maps a LOG_LEVEL value to a zap level; unknown values mean info
func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// errorFields attaches err when there is one
func errorFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	return []zap.Field{zap.Error(err)}
}

// WarnWithFields logs msg at warn level, with err if non-nil
func WarnWithFields(msg string, err error) {
	Log.Warn(msg, errorFields(err)...)
}

// ErrorWithFields logs msg at error level, with err if non-nil
func ErrorWithFields(msg string, err error) {
	Log.Error(msg, errorFields(err)...)
}

// FatalWithFields logs msg and exits the process
func FatalWithFields(msg string, err error) {
	Log.Fatal(msg, errorFields(err)...)
}

func WithRequestID(requestID string) zap.Field {
	return zap.String("request_id", requestID)
}

func WithUserID(userID string) zap.Field {
	return zap.String("user_id", userID)
}

// WithTargetID names the other side of a relationship operation
func WithTargetID(targetID string) zap.Field {
	return zap.String("target_id", targetID)
}

func WithIP(ip string) zap.Field {
	return zap.String("ip", ip)
}

func WithStatus(status int) zap.Field {
	return zap.Int("status", status)
}
