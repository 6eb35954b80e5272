package logger

import (
	"context"
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex

	// default logger instance
	defaultLogger *zap.Logger
)

// initializes the logger based on environment
func init() {
	defaultLogger = New(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
}

// builds a zap logger: JSON to stdout in production, console to stderr otherwise
func New(environment, level string) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var (
		encoder zapcore.Encoder
		sink    zapcore.WriteSyncer
		lvl     zapcore.Level
	)

	if environment == "production" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
		sink = zapcore.Lock(os.Stdout)
		lvl = zapcore.InfoLevel
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
		sink = zapcore.Lock(os.Stderr)
		lvl = zapcore.DebugLevel
	}

	if level != "" {
		if err := lvl.Set(level); err != nil {
			lvl = zapcore.InfoLevel
		}
	}

	return zap.New(zapcore.NewCore(encoder, sink, lvl), zap.AddCaller(), zap.AddCallerSkip(1))
}

// returns the default logger instance
func Default() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return defaultLogger
}

// replaces the default logger and returns a func restoring the previous one
func SetDefault(l *zap.Logger) func() {
	mu.Lock()
	defer mu.Unlock()

	prev := defaultLogger
	defaultLogger = l

	return func() {
		mu.Lock()
		defer mu.Unlock()
		defaultLogger = prev
	}
}

// creates a logger with additional context fields
func With(args ...any) *zap.Logger {
	return Default().With(fields(args)...)
}

// creates a logger with context
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Default()
	}

	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}

	return Default()
}

// adds logger to context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// helper type for context key
type loggerKey struct{}

// convenience functions for common log levels

// logs a debug message
func Debug(msg string, args ...any) {
	Default().Debug(msg, fields(args)...)
}

// logs an info message
func Info(msg string, args ...any) {
	Default().Info(msg, fields(args)...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	Default().Warn(msg, fields(args)...)
}

// logs an error message
func Error(msg string, args ...any) {
	Default().Error(msg, fields(args)...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	Default().Error(msg, append(fields(args), zap.Error(err))...)
}

// stackTracer is satisfied by errors carrying a formatted stack trace
type stackTracer interface {
	Stack() string
}

// exceptionFields is satisfied by errors exposing an HTTP classification
type exceptionFields interface {
	HTTPStatus() int
	KindName() string
}

// logs an error raised while serving a request, including its stack when available
func Exception(err error) {
	if err == nil {
		return
	}

	fs := []zap.Field{zap.Error(err)}

	var ef exceptionFields
	if errors.As(err, &ef) {
		fs = append(fs, zap.String("kind", ef.KindName()), zap.Int("status", ef.HTTPStatus()))
	}

	var st stackTracer
	if errors.As(err, &st) {
		fs = append(fs, zap.String("stack", st.Stack()))
	}

	Default().Error("request failed", fs...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	Default().Error(msg, fields(args)...)
	_ = Default().Sync()
	os.Exit(1)
}

// logs a fatal error with error and exits (for CLI tools)
func FatalErr(err error, msg string, args ...any) {
	Default().Error(msg, append(fields(args), zap.Error(err))...)
	_ = Default().Sync()
	os.Exit(1)
}

// flushes buffered log entries
func Sync() error {
	return Default().Sync()
}

// converts alternating key/value pairs into zap fields
func fields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, (len(args)+1)/2)

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			out = append(out, zap.Any("arg", args[i]))
			i--
			continue
		}

		if i+1 >= len(args) {
			out = append(out, zap.Any(key, nil))
			break
		}

		if err, isErr := args[i+1].(error); isErr {
			out = append(out, zap.NamedError(key, err))
			continue
		}

		out = append(out, zap.Any(key, args[i+1]))
	}

	return out
}
