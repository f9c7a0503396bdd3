package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options select the output format and threshold of the zerolog adapter.
// The zero value falls back to the APP_ENV environment variable and the
// info level, so loggers built before configuration is loaded stay usable.
type Options struct {
	Env   string
	Level string
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger for the given component. The dev
// environment gets the human console writer, everything else plain JSON on
// stdout. All logs include the component field.
func NewZerologLogger(component string, opts Options) Logger {
	env := strings.ToLower(opts.Env)
	if env == "" {
		env = strings.ToLower(os.Getenv("APP_ENV"))
	}
	z := zerolog.New(os.Stdout)
	if env == "dev" {
		z = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	z = z.Level(lvl).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
