package capture

import "errors"

var (
	ErrInvalidMagic       = errors.New("capture: invalid magic")
	ErrUnsupportedVersion = errors.New("capture: unsupported version")
	ErrInvalidHeaderLen   = errors.New("capture: invalid header length")
	ErrTruncated          = errors.New("capture: truncated data")
	ErrInvalidLength      = errors.New("capture: invalid length")
	ErrFieldTypeMismatch  = errors.New("capture: field type mismatch")
	ErrTooLarge           = errors.New("capture: payload too large")
)
