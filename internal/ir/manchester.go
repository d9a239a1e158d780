package ir

import (
	"errors"

	"github.com/danmuck/irmanchester/internal/manchester"
	"github.com/danmuck/irmanchester/internal/timing"
)

// Manchester registers the manchester package as a Protocol.
type Manchester struct{}

var _ Protocol = Manchester{}

func (Manchester) Name() string     { return manchester.Name }
func (Manchester) DefaultBits() int { return manchester.CanonicalBits }

func (Manchester) Carrier() (int, int) {
	return manchester.CarrierKHz, manchester.DutyCyclePercent
}

func (Manchester) Send(carrier Carrier, sink Sink, value uint64, nbits int, repeat uint) error {
	return manchester.NewEncoder(carrier, sink).Send(value, nbits, repeat)
}

func (Manchester) Decode(src timing.Source, offset, nbits int, strict bool) (Result, error) {
	msg, err := manchester.DecodeMessage(src, offset, nbits, strict)
	if err != nil {
		return Result{}, err
	}
	return manchesterResult(msg), nil
}

func (Manchester) Scan(src timing.Source, from, nbits int, strict bool) (Result, int, error) {
	d, at, err := manchester.NewDecoder(nil).Scan(src, from, nbits, strict)
	if err != nil {
		return Result{}, at, err
	}
	return manchesterResult(manchester.NewMessage(d)), at, nil
}

func manchesterResult(msg manchester.Message) Result {
	return Result{
		Protocol: manchester.Name,
		Value:    msg.Value,
		Address:  msg.Address,
		Command:  msg.Command,
		Repeat:   msg.Repeat,
		Bits:     msg.Bits,
	}
}

func (Manchester) Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, manchester.ErrPayloadTooWide):
		return "payload_too_wide"
	case errors.Is(err, manchester.ErrInvalidWidth):
		return "invalid_width"
	case errors.Is(err, manchester.ErrInsufficientSamples):
		return "insufficient_samples"
	case errors.Is(err, manchester.ErrNonCompliantWidth):
		return "non_compliant_width"
	case errors.Is(err, manchester.ErrInsufficientBits):
		return "insufficient_bits"
	case errors.Is(err, manchester.ErrNonCompliantBitCount):
		return "non_compliant_bit_count"
	default:
		return "error"
	}
}
