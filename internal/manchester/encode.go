package manchester

import (
	"fmt"
	"time"

	"github.com/danmuck/irmanchester/internal/timing"
)

// Carrier switches on the modulation used for marks.
type Carrier interface {
	Activate(frequencyKHz, dutyCyclePercent int) error
}

// Sink emits pulses in order.
type Sink interface {
	Mark(d time.Duration)
	Space(d time.Duration)
}

// Encode returns the pulse sequence for the low nbits of value, sent
// repeat+1 times. Nothing is produced when nbits is out of range.
func Encode(value uint64, nbits int, repeat uint) ([]timing.Pulse, error) {
	if err := checkWidth(nbits); err != nil {
		return nil, err
	}

	pulses := make([]timing.Pulse, 0, (2*nbits+1)*(int(repeat)+1))
	for i := uint(0); i <= repeat; i++ {
		for mask := uint64(1) << (nbits - 1); mask != 0; mask >>= 1 {
			if value&mask != 0 {
				pulses = append(pulses, space(Tick), mark(Tick))
			} else {
				pulses = append(pulses, mark(Tick), space(Tick))
			}
		}
		pulses = append(pulses, space(Gap))
	}
	return pulses, nil
}

func checkWidth(nbits int) error {
	if nbits > MaxBits {
		return ErrPayloadTooWide
	}
	if nbits < 1 {
		return ErrInvalidWidth
	}
	return nil
}

func mark(d time.Duration) timing.Pulse {
	return timing.Pulse{Level: timing.Mark, Duration: d}
}

func space(d time.Duration) timing.Pulse {
	return timing.Pulse{Level: timing.Space, Duration: d}
}

// Encoder sends payloads through a carrier and a pulse sink.
type Encoder struct {
	carrier Carrier
	sink    Sink
}

func NewEncoder(carrier Carrier, sink Sink) *Encoder {
	return &Encoder{carrier: carrier, sink: sink}
}

// Send activates the carrier once and emits the pulses for value. On error
// neither the carrier nor the sink is touched.
func (e *Encoder) Send(value uint64, nbits int, repeat uint) error {
	pulses, err := Encode(value, nbits, repeat)
	if err != nil {
		return err
	}
	if err := e.carrier.Activate(CarrierKHz, DutyCyclePercent); err != nil {
		return fmt.Errorf("manchester: activate carrier: %w", err)
	}
	Emit(e.sink, pulses)
	return nil
}

// Emit writes pulses to sink in order.
func Emit(sink Sink, pulses []timing.Pulse) {
	for _, p := range pulses {
		switch p.Level {
		case timing.Mark:
			sink.Mark(p.Duration)
		case timing.Space:
			sink.Space(p.Duration)
		}
	}
}

// LeadsWithSpace reports whether the first symbol sent for value is a space,
// i.e. bit nbits-1 is set. A demodulating receiver merges that space into the
// preceding gap, so such a capture loses its first bit.
func LeadsWithSpace(value uint64, nbits int) bool {
	if checkWidth(nbits) != nil {
		return false
	}
	return value>>(nbits-1)&1 == 1
}
