// Package logger wraps zerolog with context-carried fields.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by Options.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Level       zerolog.Level
	Format      string
	Output      io.Writer
}

// Logger writes structured entries. Fields attached to a context with WithField are
// added to every entry logged with that context.
//
// Example:
//
// 	ctx = log.WithOrderID(ctx, id.String())
// 	log.Info(ctx, "order advanced", "status", next.String())
type Logger struct {
	base *zerolog.Logger
}

type ctxKey struct{}

// New creates a logger. The level defaults to info and the output to stdout.
func New(opts Options) *Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	if strings.EqualFold(opts.Format, FormatConsole) {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := zerolog.New(output).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(opts.Level)

	return &Logger{base: &l}
}

// Nop discards everything. Used by tests and optional components.
func Nop() *Logger {
	l := zerolog.Nop()
	return &Logger{base: &l}
}

// ParseLevel reads a level name. Blank or unknown names fall back to info.
func ParseLevel(value string) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(value); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// Named returns a child logger tagged with a component name.
func (l *Logger) Named(component string) *Logger {
	child := l.base.With().Str("component", component).Logger()
	return &Logger{base: &child}
}

func (l *Logger) from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
			return entry
		}
	}
	return l.base
}

// WithField returns a context whose entries carry key=value.
func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	entry := l.from(ctx).With().Interface(key, value).Logger()
	return context.WithValue(ctx, ctxKey{}, &entry)
}

// WithOperator tags the context with the acting operator.
func (l *Logger) WithOperator(ctx context.Context, operator string) context.Context {
	return l.WithField(ctx, "operator", operator)
}

// WithOrderID tags the context with an order id.
func (l *Logger) WithOrderID(ctx context.Context, orderID string) context.Context {
	return l.WithField(ctx, "order_id", orderID)
}

// Debug logs msg with alternating key, value fields.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...any) {
	l.from(ctx).Debug().Fields(fields).Msg(msg)
}

// Info logs msg with alternating key, value fields.
func (l *Logger) Info(ctx context.Context, msg string, fields ...any) {
	l.from(ctx).Info().Fields(fields).Msg(msg)
}

// Warn logs msg with alternating key, value fields.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...any) {
	l.from(ctx).Warn().Fields(fields).Msg(msg)
}

// Error logs msg with err attached when it is not nil.
func (l *Logger) Error(ctx context.Context, msg string, err error, fields ...any) {
	event := l.from(ctx).Error().Fields(fields)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
