package common

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type LogLevel uint8

// NoLevel means it should be ignored
const (
	NoLevel LogLevel = iota
	TraceLevel
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
	PanicLevel
	maxLogLevel
)

const LogLevelCount = int(maxLogLevel)

var levelMapping = []zerolog.Level{
	NoLevel:    zerolog.NoLevel,
	TraceLevel: zerolog.TraceLevel,
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
	PanicLevel: zerolog.PanicLevel,
}

var levelNames = []string{
	NoLevel:    "none",
	TraceLevel: "trace",
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
	PanicLevel: "panic",
}

func ToZerologLevel(level LogLevel) zerolog.Level {
	if int(level) >= LogLevelCount {
		return zerolog.NoLevel
	}
	return levelMapping[level]
}

func (l LogLevel) String() string {
	if int(l) >= LogLevelCount {
		return fmt.Sprintf("LogLevel(%d)", uint8(l))
	}
	return levelNames[l]
}

// ParseLogLevel maps a configuration string such as "info" to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i), nil
		}
	}
	return NoLevel, fmt.Errorf("unknown log level %q", s)
}
