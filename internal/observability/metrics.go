package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "irmanchester"

var (
	registerOnce sync.Once

	encodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "encode_total",
			Help:      "Encode attempts by protocol and outcome.",
		},
		[]string{"protocol", "outcome"},
	)
	encodePulses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "encode_pulses_total",
			Help:      "Pulses produced by successful encodes.",
		},
		[]string{"protocol"},
	)
	decodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "decode_total",
			Help:      "Decode attempts by protocol and outcome.",
		},
		[]string{"protocol", "outcome"},
	)
	decodeBits = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "decode_bits",
			Help:      "Bit count of successful decodes.",
			Buckets:   []float64{4, 8, 13, 16, 24, 32, 48, 64},
		},
		[]string{"protocol"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "decode_duration_seconds",
			Help:      "Wall time of decode attempts.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
		},
		[]string{"protocol"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(encodeTotal, encodePulses, decodeTotal, decodeBits, decodeDuration)
	})
}

func RecordEncode(protocol, outcome string, pulses int) {
	RegisterMetrics()
	encodeTotal.WithLabelValues(protocol, outcome).Inc()
	if pulses > 0 {
		encodePulses.WithLabelValues(protocol).Add(float64(pulses))
	}
}

func RecordDecode(protocol, outcome string, bits int, duration time.Duration) {
	RegisterMetrics()
	decodeTotal.WithLabelValues(protocol, outcome).Inc()
	decodeDuration.WithLabelValues(protocol).Observe(duration.Seconds())
	if outcome == "ok" {
		decodeBits.WithLabelValues(protocol).Observe(float64(bits))
	}
}

// WriteText writes the codec metric families gathered from g in the
// Prometheus text exposition format. Families outside this module's
// namespace are skipped.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	RegisterMetrics()
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
