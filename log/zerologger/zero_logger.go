package zerologger

import (
	"io"

	"github.com/rs/zerolog"

	logcomm "github.com/TopiaNetwork/tpwallet/log/common"
)

type ZeroLogger struct {
	zl zerolog.Logger
}

func NewLogger(level zerolog.Level, w io.Writer) *ZeroLogger {
	return &ZeroLogger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func NewNopLogger() *ZeroLogger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) Trace(msg string) { l.zl.Trace().Msg(msg) }

func (l *ZeroLogger) Tracef(format string, args ...interface{}) { l.zl.Trace().Msgf(format, args...) }

func (l *ZeroLogger) Debug(msg string) { l.zl.Debug().Msg(msg) }

func (l *ZeroLogger) Debugf(format string, args ...interface{}) { l.zl.Debug().Msgf(format, args...) }

func (l *ZeroLogger) Info(msg string) { l.zl.Info().Msg(msg) }

func (l *ZeroLogger) Infof(format string, args ...interface{}) { l.zl.Info().Msgf(format, args...) }

func (l *ZeroLogger) Warn(msg string) { l.zl.Warn().Msg(msg) }

func (l *ZeroLogger) Warnf(format string, args ...interface{}) { l.zl.Warn().Msgf(format, args...) }

func (l *ZeroLogger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *ZeroLogger) Errorf(format string, args ...interface{}) { l.zl.Error().Msgf(format, args...) }

// With returns a child logger carrying key=value on every entry.
func (l *ZeroLogger) With(key string, value interface{}) *ZeroLogger {
	return &ZeroLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *ZeroLogger) UpdateLoggerLevel(level logcomm.LogLevel) {
	l.zl = l.zl.Level(logcomm.ToZerologLevel(level))
}

func (l *ZeroLogger) CreateModuleLogger(level zerolog.Level, module string) *ZeroLogger {
	return &ZeroLogger{zl: l.zl.With().Str("module", module).Logger().Level(level)}
}
