package zap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danmuck/irmanchester/internal/logging"
)

func TestZapLoggerForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l logging.Logger = ZapLogger{L: zap.New(core)}

	l.Warn("symbol mismatch", logging.Fields{"offset": 7})
	l.Info("no fields", nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].Message != "symbol mismatch" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if got := entries[0].ContextMap()["offset"]; got != int64(7) {
		t.Fatalf("unexpected offset field: %#v", got)
	}
	if len(entries[1].Context) != 0 {
		t.Fatalf("expected no fields, got %+v", entries[1].Context)
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(logging.Config{Level: zerolog.InfoLevel, Bypass: true, Out: &buf})

	l.Info("decoded", logging.Fields{"bits": 13})
	l.Debug("dropped", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["msg"] != "decoded" || rec["level"] != "info" || rec["bits"] != float64(13) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if _, ok := rec["ts"]; ok {
		t.Fatalf("timestamp should be off")
	}
}

func TestNewDisabledIsNop(t *testing.T) {
	var buf bytes.Buffer
	New(logging.Config{Level: zerolog.Disabled, Out: &buf}).Error("boom", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
