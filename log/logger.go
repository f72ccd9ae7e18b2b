package log

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/rs/zerolog"

	logcomm "github.com/TopiaNetwork/tpwallet/log/common"
	"github.com/TopiaNetwork/tpwallet/log/zerologger"
)

type LogFormat uint8

const (
	TextFormat LogFormat = iota
	JSONFormat
)
const DefaultLogFormat = TextFormat

type LogOutput uint8

const (
	StdErrOutput LogOutput = iota
	FileLogOutput
	DiscardOutput
)
const DefaultLogOutput = StdErrOutput

const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger never exits the process: a wallet embedded in a host application
// reports failures through errors only.
type Logger interface {
	Trace(msg string)
	Tracef(string, ...interface{})
	Debug(msg string)
	Debugf(string, ...interface{})
	Info(msg string)
	Infof(string, ...interface{})
	Warn(msg string)
	Warnf(string, ...interface{})
	Error(msg string)
	Errorf(string, ...interface{})

	// With returns a logger adding key=value to every entry.
	With(key string, value interface{}) Logger

	UpdateLoggerLevel(level logcomm.LogLevel)
}

type zeroLogger struct {
	*zerologger.ZeroLogger
}

func (l zeroLogger) With(key string, value interface{}) Logger {
	return zeroLogger{l.ZeroLogger.With(key, value)}
}

func (l LogFormat) String() string {
	switch l {
	case TextFormat:
		return "text"
	case JSONFormat:
		return "json"
	}
	return fmt.Sprintf("LogFormat(%d)", uint8(l))
}

func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return DefaultLogFormat, fmt.Errorf("unknown log format %q", s)
}

func (o LogOutput) String() string {
	switch o {
	case StdErrOutput:
		return "stderr"
	case FileLogOutput:
		return "file"
	case DiscardOutput:
		return "discard"
	}
	return fmt.Sprintf("LogOutput(%d)", uint8(o))
}

// ParseLogOutput maps "stderr", "discard" or a file path to an output and its
// parameter for CreateMainLogger.
func ParseLogOutput(s string) (LogOutput, string) {
	switch v := strings.TrimSpace(s); strings.ToLower(v) {
	case "", "stderr":
		return StdErrOutput, ""
	case "discard", "none":
		return DiscardOutput, ""
	default:
		return FileLogOutput, v
	}
}

func newTextOutput(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: TimestampFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
	}
}

func generateOutput(output LogOutput, param string) (io.Writer, error) {
	switch output {
	case StdErrOutput:
		return os.Stderr, nil
	case FileLogOutput:
		if param == "" {
			return nil, fmt.Errorf("log file path blank")
		}
		return os.OpenFile(param, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	case DiscardOutput:
		return ioutil.Discard, nil
	default:
		return nil, fmt.Errorf("unknown log output %s", output)
	}
}

func CreateMainLogger(level logcomm.LogLevel, format LogFormat, output LogOutput, param string) (Logger, error) {
	w, err := generateOutput(output, param)
	if err != nil {
		return nil, err
	}

	switch format {
	case TextFormat:
		w = newTextOutput(w)
	case JSONFormat:
	default:
		return nil, fmt.Errorf("unknown log format %s", format)
	}

	return zeroLogger{zerologger.NewLogger(logcomm.ToZerologLevel(level), w)}, nil
}

func NewNopLogger() Logger {
	return zeroLogger{zerologger.NewNopLogger()}
}

// CreateModuleLogger derives a logger tagged with module. A nil or foreign parent
// gives a logger that drops everything.
func CreateModuleLogger(level logcomm.LogLevel, module string, l Logger) Logger {
	if zl, ok := l.(zeroLogger); ok && zl.ZeroLogger != nil {
		return zeroLogger{zl.CreateModuleLogger(logcomm.ToZerologLevel(level), module)}
	}

	return NewNopLogger()
}
