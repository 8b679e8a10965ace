package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog. Each call emits one
// structured line; persistent fields live in the wrapped zerolog context.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewLogger builds a ZerologLogger writing to w. component is attached as a
// persistent field when non-empty.
func NewLogger(cfg Config, w io.Writer, component string) (*ZerologLogger, error) {
	if w == nil {
		w = os.Stdout
	}
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	switch cfg.Format {
	case "", FormatJSON:
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if component != "" {
		ctx = ctx.Str("component", component)
	}
	return &ZerologLogger{zl: ctx.Logger()}, nil
}

// NewStdoutLogger returns an info-level JSON logger on stdout.
func NewStdoutLogger(component string) *ZerologLogger {
	l, _ := NewLogger(DefaultConfig(), os.Stdout, component)
	return l
}

func toMap(fields []Field) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func (z *ZerologLogger) log(ev *zerolog.Event, msg string, fields []Field) {
	if m := toMap(fields); m != nil {
		ev = ev.Fields(m)
	}
	ev.Msg(msg)
}

func (z *ZerologLogger) Debug(msg string, fields ...Field) {
	z.log(z.zl.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields ...Field) {
	z.log(z.zl.Info(), msg, fields)
}

func (z *ZerologLogger) Warn(msg string, fields ...Field) {
	z.log(z.zl.Warn(), msg, fields)
}

func (z *ZerologLogger) Error(msg string, fields ...Field) {
	z.log(z.zl.Error(), msg, fields)
}

func (z *ZerologLogger) With(fields ...Field) Logger {
	m := toMap(fields)
	if m == nil {
		return z
	}
	return &ZerologLogger{zl: z.zl.With().Fields(m).Logger()}
}
