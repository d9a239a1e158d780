// Package capture persists pulse trains so they can be replayed and decoded
// offline.
package capture

import (
	"time"

	"github.com/danmuck/irmanchester/internal/timing"
)

// Pulse is one interval of a record, in whole microseconds.
type Pulse struct {
	Mark   bool  `json:"mark" cbor:"mark" msgpack:"mark"`
	Micros int64 `json:"us" cbor:"us" msgpack:"us"`
}

// Record is a saved pulse train. Pulses carry explicit levels (an encoder
// output); Raw holds a receiver capture whose levels follow from position.
type Record struct {
	Protocol string  `json:"protocol" cbor:"protocol" msgpack:"protocol"`
	Bits     int     `json:"bits" cbor:"bits" msgpack:"bits"`
	Value    uint64  `json:"value" cbor:"value" msgpack:"value"`
	Repeat   uint    `json:"repeat" cbor:"repeat" msgpack:"repeat"`
	Pulses   []Pulse `json:"pulses,omitempty" cbor:"pulses,omitempty" msgpack:"pulses,omitempty"`
	Raw      []int64 `json:"raw,omitempty" cbor:"raw,omitempty" msgpack:"raw,omitempty"`
}

// FromPulses builds a record from an encoder's output.
func FromPulses(protocol string, bits int, value uint64, repeat uint, pulses []timing.Pulse) Record {
	out := make([]Pulse, 0, len(pulses))
	for _, p := range pulses {
		if p.Level == timing.None {
			continue
		}
		out = append(out, Pulse{Mark: p.Level == timing.Mark, Micros: p.Duration.Microseconds()})
	}
	return Record{Protocol: protocol, Bits: bits, Value: value, Repeat: repeat, Pulses: out}
}

// FromCapture builds a record from a receiver capture.
func FromCapture(protocol string, bits int, c timing.Capture) Record {
	raw := make([]int64, len(c))
	for i, d := range c {
		raw[i] = d.Microseconds()
	}
	return Record{Protocol: protocol, Bits: bits, Raw: raw}
}

// Source returns the record as a decoder input, and the offset of the first
// data sample: 1 for raw captures to skip the leading gap, 0 otherwise.
func (r Record) Source() (timing.Source, int) {
	if len(r.Raw) > 0 {
		c := make(timing.Capture, len(r.Raw))
		for i, us := range r.Raw {
			c[i] = time.Duration(us) * time.Microsecond
		}
		return c, 1
	}
	return r.TimingPulses(), 0
}

// TimingPulses converts Pulses back to timing pulses.
func (r Record) TimingPulses() timing.Pulses {
	out := make(timing.Pulses, len(r.Pulses))
	for i, p := range r.Pulses {
		lvl := timing.Space
		if p.Mark {
			lvl = timing.Mark
		}
		out[i] = timing.Pulse{Level: lvl, Duration: time.Duration(p.Micros) * time.Microsecond}
	}
	return out
}
