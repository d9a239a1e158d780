package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danmuck/irmanchester/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(decodeTotal.WithLabelValues("metrics-test", "ok"))
	RecordDecode("metrics-test", "ok", 13, 40*time.Microsecond)
	RecordDecode("metrics-test", "insufficient_bits", 0, 10*time.Microsecond)
	after := testutil.ToFloat64(decodeTotal.WithLabelValues("metrics-test", "ok"))
	if after-before != 1 {
		t.Fatalf("expected one ok decode, got %v", after-before)
	}

	RecordEncode("metrics-test", "ok", 27)
	RecordEncode("metrics-test", "payload_too_wide", 0)
	if got := testutil.ToFloat64(encodePulses.WithLabelValues("metrics-test")); got != 27 {
		t.Fatalf("unexpected pulse count: %v", got)
	}
}

func TestWriteTextOnlyCodecFamilies(t *testing.T) {
	RecordEncode("text-test", "ok", 9)

	var buf bytes.Buffer
	if err := WriteText(&buf, prometheus.DefaultGatherer); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "# TYPE irmanchester_codec_encode_total counter") {
		t.Fatalf("missing encode family:\n%s", out)
	}
	if !strings.Contains(out, `irmanchester_codec_encode_pulses_total{protocol="text-test"} 9`) {
		t.Fatalf("missing pulse sample:\n%s", out)
	}
	if strings.Contains(out, "go_goroutines") {
		t.Fatalf("runtime families should be skipped:\n%s", out)
	}
}
