package capture

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Wire layout, big endian:
//
//	magic(4) | version(2) | header_len(2) | payload_len(4) | fields...
//	field: id(2) | type(1) | len(4) | value(len)
const (
	Magic      uint32 = 0x49524350 // "IRCP"
	Version    uint16 = 1
	HeaderSize uint16 = 12

	fieldHeaderSize = 2 + 1 + 4
	pulseSize       = 1 + 4
)

type fieldType uint8

const (
	typeUint16 fieldType = 2
	typeUint64 fieldType = 4
	typeString fieldType = 6
	typeBytes  fieldType = 7
)

const (
	fieldProtocol uint16 = 1
	fieldBits     uint16 = 2
	fieldValue    uint16 = 3
	fieldRepeat   uint16 = 4
	fieldPulses   uint16 = 5
	fieldRaw      uint16 = 6
)

type field struct {
	id    uint16
	typ   fieldType
	value []byte
}

// Wire is the compact binary record format.
type Wire struct{}

func (Wire) Encode(r Record) ([]byte, error) {
	fields, err := recordFields(r)
	if err != nil {
		return nil, err
	}
	var payloadLen int
	for _, f := range fields {
		payloadLen += fieldHeaderSize + len(f.value)
	}
	if uint64(payloadLen) > math.MaxUint32 {
		return nil, ErrInvalidLength
	}

	var buf bytes.Buffer
	buf.Grow(int(HeaderSize) + payloadLen)
	buf.Write(encodeHeader(uint32(payloadLen)))
	for _, f := range fields {
		if err := writeField(&buf, f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (Wire) Decode(b []byte) (Record, error) {
	r := bytes.NewReader(b)
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return Record{}, ErrTruncated
	}
	payloadLen, err := parseHeader(head)
	if err != nil {
		return Record{}, err
	}
	switch {
	case uint64(payloadLen) > uint64(r.Len()):
		return Record{}, ErrTruncated
	case uint64(payloadLen) < uint64(r.Len()):
		return Record{}, ErrInvalidLength
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Record{}, ErrTruncated
	}
	fields, err := parseFields(payload)
	if err != nil {
		return Record{}, err
	}
	return recordFromFields(fields)
}

func encodeHeader(payloadLen uint32) []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buf[0:4], Magic)
	binary.BigEndian.PutUint16(buf[4:6], Version)
	binary.BigEndian.PutUint16(buf[6:8], HeaderSize)
	binary.BigEndian.PutUint32(buf[8:12], payloadLen)
	return buf
}

func parseHeader(buf []byte) (uint32, error) {
	if binary.BigEndian.Uint32(buf[0:4]) != Magic {
		return 0, ErrInvalidMagic
	}
	if binary.BigEndian.Uint16(buf[4:6]) != Version {
		return 0, ErrUnsupportedVersion
	}
	if binary.BigEndian.Uint16(buf[6:8]) != HeaderSize {
		return 0, ErrInvalidHeaderLen
	}
	return binary.BigEndian.Uint32(buf[8:12]), nil
}

func writeField(w io.Writer, f field) error {
	buf := make([]byte, fieldHeaderSize)
	binary.BigEndian.PutUint16(buf[0:2], f.id)
	buf[2] = byte(f.typ)
	binary.BigEndian.PutUint32(buf[3:7], uint32(len(f.value)))
	if _, err := w.Write(buf); err != nil {
		return err
	}
	if len(f.value) == 0 {
		return nil
	}
	_, err := w.Write(f.value)
	return err
}

func parseFields(payload []byte) ([]field, error) {
	fields := make([]field, 0, 6)
	for offset := 0; offset < len(payload); {
		if len(payload)-offset < fieldHeaderSize {
			return nil, ErrTruncated
		}
		id := binary.BigEndian.Uint16(payload[offset : offset+2])
		typ := fieldType(payload[offset+2])
		length := binary.BigEndian.Uint32(payload[offset+3 : offset+7])
		offset += fieldHeaderSize
		if length > uint32(len(payload)-offset) {
			return nil, ErrInvalidLength
		}
		end := offset + int(length)
		value := make([]byte, length)
		copy(value, payload[offset:end])
		fields = append(fields, field{id: id, typ: typ, value: value})
		offset = end
	}
	return fields, nil
}

func recordFields(r Record) ([]field, error) {
	if r.Bits < 0 || r.Bits > math.MaxUint16 || r.Repeat > math.MaxUint16 {
		return nil, ErrInvalidLength
	}
	fields := []field{
		{id: fieldProtocol, typ: typeString, value: []byte(r.Protocol)},
		{id: fieldBits, typ: typeUint16, value: binary.BigEndian.AppendUint16(nil, uint16(r.Bits))},
		{id: fieldValue, typ: typeUint64, value: binary.BigEndian.AppendUint64(nil, r.Value)},
		{id: fieldRepeat, typ: typeUint16, value: binary.BigEndian.AppendUint16(nil, uint16(r.Repeat))},
	}
	if len(r.Pulses) > 0 {
		buf := make([]byte, 0, len(r.Pulses)*pulseSize)
		for _, p := range r.Pulses {
			if p.Micros < 0 || p.Micros > math.MaxUint32 {
				return nil, ErrInvalidLength
			}
			level := byte(0)
			if p.Mark {
				level = 1
			}
			buf = append(buf, level)
			buf = binary.BigEndian.AppendUint32(buf, uint32(p.Micros))
		}
		fields = append(fields, field{id: fieldPulses, typ: typeBytes, value: buf})
	}
	if len(r.Raw) > 0 {
		buf := make([]byte, 0, len(r.Raw)*4)
		for _, us := range r.Raw {
			if us < 0 || us > math.MaxUint32 {
				return nil, ErrInvalidLength
			}
			buf = binary.BigEndian.AppendUint32(buf, uint32(us))
		}
		fields = append(fields, field{id: fieldRaw, typ: typeBytes, value: buf})
	}
	return fields, nil
}

// recordFromFields ignores unknown field ids.
func recordFromFields(fields []field) (Record, error) {
	var r Record
	for _, f := range fields {
		switch f.id {
		case fieldProtocol:
			if f.typ != typeString {
				return Record{}, ErrFieldTypeMismatch
			}
			r.Protocol = string(f.value)
		case fieldBits, fieldRepeat:
			v, err := f.uint16()
			if err != nil {
				return Record{}, err
			}
			if f.id == fieldBits {
				r.Bits = int(v)
			} else {
				r.Repeat = uint(v)
			}
		case fieldValue:
			if f.typ != typeUint64 {
				return Record{}, ErrFieldTypeMismatch
			}
			if len(f.value) != 8 {
				return Record{}, ErrInvalidLength
			}
			r.Value = binary.BigEndian.Uint64(f.value)
		case fieldPulses:
			if f.typ != typeBytes {
				return Record{}, ErrFieldTypeMismatch
			}
			if len(f.value)%pulseSize != 0 {
				return Record{}, ErrInvalidLength
			}
			r.Pulses = make([]Pulse, 0, len(f.value)/pulseSize)
			for i := 0; i < len(f.value); i += pulseSize {
				r.Pulses = append(r.Pulses, Pulse{
					Mark:   f.value[i] == 1,
					Micros: int64(binary.BigEndian.Uint32(f.value[i+1 : i+pulseSize])),
				})
			}
		case fieldRaw:
			if f.typ != typeBytes {
				return Record{}, ErrFieldTypeMismatch
			}
			if len(f.value)%4 != 0 {
				return Record{}, ErrInvalidLength
			}
			r.Raw = make([]int64, 0, len(f.value)/4)
			for i := 0; i < len(f.value); i += 4 {
				r.Raw = append(r.Raw, int64(binary.BigEndian.Uint32(f.value[i:i+4])))
			}
		}
	}
	return r, nil
}

func (f field) uint16() (uint16, error) {
	if f.typ != typeUint16 {
		return 0, ErrFieldTypeMismatch
	}
	if len(f.value) != 2 {
		return 0, ErrInvalidLength
	}
	return binary.BigEndian.Uint16(f.value), nil
}
