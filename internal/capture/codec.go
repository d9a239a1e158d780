package capture

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes/decodes records to []byte for storage.
type Codec interface {
	Encode(Record) ([]byte, error)
	Decode([]byte) (Record, error)
}

// ByName returns the codec for format: json, cbor, msgpack or wire.
func ByName(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return JSON{}, nil
	case "cbor":
		return NewCBOR(true)
	case "msgpack":
		return Msgpack{}, nil
	case "wire":
		return Wire{}, nil
	default:
		return nil, fmt.Errorf("capture: unknown format %q", format)
	}
}

// Formats lists the names ByName accepts.
func Formats() []string {
	return []string{"json", "cbor", "msgpack", "wire"}
}

type JSON struct{}

func (JSON) Encode(r Record) ([]byte, error) { return json.MarshalIndent(r, "", "  ") }
func (JSON) Decode(b []byte) (Record, error) {
	var r Record
	err := json.Unmarshal(b, &r)
	return r, err
}

// CBOR serializes records with fxamacker/cbor. The zero value is NOT ready
// to use; construct with NewCBOR.
//
// Deterministic mode uses RFC 8949 core deterministic encoding, so equal
// records always produce equal bytes.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

func (c CBOR) Encode(r Record) ([]byte, error) { return c.enc.Marshal(r) }
func (c CBOR) Decode(b []byte) (Record, error) {
	var r Record
	err := c.dec.Unmarshal(b, &r)
	return r, err
}

// Msgpack serializes records with vmihailenco/msgpack. The zero value is
// ready to use.
type Msgpack struct{}

func (Msgpack) Encode(r Record) ([]byte, error) { return msgpack.Marshal(r) }
func (Msgpack) Decode(b []byte) (Record, error) {
	var r Record
	err := msgpack.Unmarshal(b, &r)
	return r, err
}

// Limit wraps another codec and rejects payloads larger than MaxDecode at
// Decode time. MaxDecode <= 0 disables the check.
type Limit struct {
	Inner     Codec
	MaxDecode int
}

func (c Limit) Encode(r Record) ([]byte, error) { return c.Inner.Encode(r) }
func (c Limit) Decode(b []byte) (Record, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return Record{}, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
