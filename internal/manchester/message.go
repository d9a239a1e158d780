package manchester

import "github.com/danmuck/irmanchester/internal/timing"

// Message is a decoded value with the protocol's field split applied.
type Message struct {
	Value uint64
	// Address is the unit number, the low four bits.
	Address uint64
	// Command is the team number, the remaining high bits.
	Command uint64
	// Repeat is never inferred from the stream and is always false.
	Repeat bool
	Bits   int
}

// Split applies the unit/team field convention to value.
func Split(value uint64) (address, command uint64) {
	return value & 0xF, value >> 4
}

// NewMessage builds a Message from a decode outcome.
func NewMessage(d Decoded) Message {
	address, command := Split(d.Value)
	return Message{
		Value:   d.Value,
		Address: address,
		Command: command,
		Repeat:  false,
		Bits:    d.Bits,
	}
}

// DecodeMessage decodes with the protocol Model and applies Split.
func DecodeMessage(src timing.Source, offset, nbits int, strict bool) (Message, error) {
	d, err := NewDecoder(nil).Decode(src, offset, nbits, strict)
	if err != nil {
		return Message{}, err
	}
	return NewMessage(d), nil
}
