package logrus

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"

	"github.com/danmuck/irmanchester/internal/logging"
)

type LogrusLogger struct{ L logrus.FieldLogger }

// New builds a logrus logger from cfg: JSON when Bypass is set, text
// otherwise. A disabled level discards everything.
func New(cfg logging.Config) LogrusLogger {
	l := logrus.New()
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	if cfg.Bypass {
		l.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: !cfg.Timestamp})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:    cfg.NoColor,
			DisableTimestamp: !cfg.Timestamp,
			FullTimestamp:    cfg.Timestamp,
		})
	}
	switch cfg.Level {
	case zerolog.TraceLevel:
		l.SetLevel(logrus.TraceLevel)
	case zerolog.DebugLevel:
		l.SetLevel(logrus.DebugLevel)
	case zerolog.InfoLevel:
		l.SetLevel(logrus.InfoLevel)
	case zerolog.WarnLevel:
		l.SetLevel(logrus.WarnLevel)
	case zerolog.Disabled:
		l.SetOutput(io.Discard)
		l.SetLevel(logrus.PanicLevel)
	default:
		l.SetLevel(logrus.ErrorLevel)
	}
	return LogrusLogger{L: l}
}

func (l LogrusLogger) Debug(msg string, f logging.Fields) { l.L.WithFields(logrus.Fields(f)).Debug(msg) }
func (l LogrusLogger) Info(msg string, f logging.Fields)  { l.L.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f logging.Fields)  { l.L.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f logging.Fields) { l.L.WithFields(logrus.Fields(f)).Error(msg) }
