package manchester

import (
	"time"

	"github.com/danmuck/irmanchester/internal/timing"
)

// Name is the registry name of the protocol.
const Name = "manchester"

const (
	// Tick is one half-bit.
	Tick = 333 * time.Microsecond
	// Gap closes every transmission.
	Gap = 100 * time.Millisecond
	// MaxGap is the longest space still read as part of a message.
	MaxGap = 20 * time.Millisecond

	// MinSamples is the sample count a source must exceed past the decode
	// offset, so that at least one full bit (two samples) is available.
	MinSamples = 1
	// CanonicalBits is the only width accepted in strict mode.
	CanonicalBits = 13
	// MaxBits is the width of the payload representation.
	MaxBits = 64

	// Carrier settings. The duty cycle is borrowed from RC5/RC6, not measured.
	CarrierKHz       = 38
	DutyCyclePercent = 25

	toleranceDelta = 150 * time.Microsecond
	maxWidth       = 3
)

// Model is the protocol timing model: exact tick, no percentage or excess
// margin, and a wide fixed delta window. The protocol has no checksum to
// reject misreads, so the window favours jitter tolerance over precision.
var Model = timing.Model{
	Tick:     Tick,
	MaxGap:   MaxGap,
	MaxWidth: maxWidth,
	Tolerance: timing.Tolerance{
		Percent: 0,
		Excess:  0,
		Delta:   toleranceDelta,
	},
}
