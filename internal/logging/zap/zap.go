package zap

import (
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danmuck/irmanchester/internal/logging"
)

type ZapLogger struct{ L *zap.Logger }

// New builds a zap logger from cfg: JSON lines when Bypass is set, console
// lines otherwise. A disabled level yields a no-op logger.
func New(cfg logging.Config) ZapLogger {
	if cfg.Level == zerolog.Disabled {
		return ZapLogger{L: zap.NewNop()}
	}
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.RFC3339TimeEncoder
	if !cfg.Timestamp {
		ec.TimeKey = ""
	}
	var enc zapcore.Encoder
	if cfg.Bypass {
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if cfg.NoColor {
			ec.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(ec)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(out), level(cfg.Level))
	return ZapLogger{L: zap.New(core)}
}

func level(l zerolog.Level) zapcore.Level {
	switch l {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return zapcore.DebugLevel
	case zerolog.InfoLevel:
		return zapcore.InfoLevel
	case zerolog.WarnLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func (z ZapLogger) Debug(msg string, f logging.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f logging.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f logging.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f logging.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f logging.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
