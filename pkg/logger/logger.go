// Package logger предоставляет логгер приложения поверх zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger — интерфейс логгера, которым пользуются все слои приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	With(key string, value any) Logger
	Zerolog() zerolog.Logger
}

// Format — формат вывода логов.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

type zeroLogger struct {
	zlog zerolog.Logger
}

// New создает логгер с заданным уровнем и форматом, пишущий в stderr.
func New(level string, format Format) Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter создает логгер, пишущий в w.
func NewWithWriter(w io.Writer, level string, format Format) Logger {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zlog := zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &zeroLogger{zlog: zlog}
}

// NewNop возвращает логгер, который ничего не пишет. Используется в тестах.
func NewNop() Logger {
	return &zeroLogger{zlog: zerolog.Nop()}
}

// ParseLevel переводит строковый уровень в zerolog.Level. Неизвестные значения дают info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zeroLogger) Debugf(format string, args ...any) {
	l.zlog.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Infof(format string, args ...any) {
	l.zlog.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Warnf(format string, args ...any) {
	l.zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Errorf(err error, format string, args ...any) {
	l.zlog.Error().Err(err).Msg(fmt.Sprintf(format, args...))
}

// With возвращает дочерний логгер с дополнительным полем.
func (l *zeroLogger) With(key string, value any) Logger {
	return &zeroLogger{zlog: l.zlog.With().Interface(key, value).Logger()}
}

// Zerolog отдает нижележащий zerolog.Logger для интеграций (pgx tracelog).
func (l *zeroLogger) Zerolog() zerolog.Logger {
	return l.zlog
}
