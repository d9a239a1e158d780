package logrus

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/danmuck/irmanchester/internal/logging"
)

func TestLogrusLoggerForwardsFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	var l logging.Logger = LogrusLogger{L: base}

	l.Error("decode failed", logging.Fields{"protocol": "manchester"})

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("expected an entry")
	}
	if entry.Level != logrus.ErrorLevel || entry.Message != "decode failed" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Data["protocol"] != "manchester" {
		t.Fatalf("unexpected data: %+v", entry.Data)
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(logging.Config{Level: zerolog.WarnLevel, Bypass: true, Out: &buf})

	l.Warn("send failed", logging.Fields{"bits": 65})
	l.Info("dropped", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["msg"] != "send failed" || rec["level"] != "warning" || rec["bits"] != float64(65) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if _, ok := rec["time"]; ok {
		t.Fatalf("timestamp should be off")
	}
}

func TestNewDisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	New(logging.Config{Level: zerolog.Disabled, Out: &buf}).Error("boom", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
