package manchester

import (
	"errors"

	"github.com/danmuck/irmanchester/internal/timing"
)

// Decoded is the outcome of one successful decode attempt.
type Decoded struct {
	Value uint64
	Bits  int
	// Next is where the decoder stopped reading.
	Next timing.Cursor
}

// Decoder reconstructs payloads through a pluggable classifier.
type Decoder struct {
	classifier timing.Classifier
}

// NewDecoder returns a decoder reading symbols through c, or through the
// protocol Model when c is nil.
func NewDecoder(c timing.Classifier) *Decoder {
	if c == nil {
		c = Model
	}
	return &Decoder{classifier: c}
}

// Decode reads nbits of payload from src starting at offset. In strict mode
// only CanonicalBits is accepted, both as the request and as the result.
// Bits decoded before an invalid symbol pair are kept; nothing after it is
// read, and no pair is started at or past the end of src. Decode never
// mutates src. A negative offset is ErrInsufficientSamples.
func (d *Decoder) Decode(src timing.Source, offset, nbits int, strict bool) (Decoded, error) {
	if offset < 0 || src.Len() <= MinSamples+offset {
		return Decoded{}, ErrInsufficientSamples
	}
	if strict && nbits != CanonicalBits {
		return Decoded{}, ErrNonCompliantWidth
	}

	out := Decoded{Next: timing.Cursor{Offset: offset}}
	for out.Next.Offset < src.Len() {
		bit, err := d.readBit(src, &out.Next)
		if err != nil {
			break
		}
		out.Value = out.Value<<1 | bit
		out.Bits++
	}

	if out.Bits < nbits {
		return Decoded{}, ErrInsufficientBits
	}
	if strict && out.Bits != CanonicalBits {
		return Decoded{}, ErrNonCompliantBitCount
	}
	return out, nil
}

func (d *Decoder) readBit(src timing.Source, cur *timing.Cursor) (uint64, error) {
	a := d.classifier.Next(src, cur)
	b := d.classifier.Next(src, cur)
	switch {
	case a == timing.Space && b == timing.Mark:
		return 1, nil
	case a == timing.Mark && b == timing.Space:
		return 0, nil
	default:
		return 0, errSymbolMismatch
	}
}

// Scan retries Decode at successive offsets from from until one succeeds.
// Errors that no later offset can fix are returned immediately.
func (d *Decoder) Scan(src timing.Source, from, nbits int, strict bool) (Decoded, int, error) {
	err := ErrInsufficientSamples
	for off := from; off < src.Len(); off++ {
		var out Decoded
		out, err = d.Decode(src, off, nbits, strict)
		switch {
		case err == nil:
			return out, off, nil
		case errors.Is(err, ErrInsufficientSamples), errors.Is(err, ErrNonCompliantWidth):
			return Decoded{}, off, err
		}
	}
	return Decoded{}, src.Len(), err
}
