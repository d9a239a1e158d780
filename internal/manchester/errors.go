package manchester

import "errors"

var (
	ErrPayloadTooWide       = errors.New("manchester: payload wider than 64 bits")
	ErrInvalidWidth         = errors.New("manchester: bit width must be positive")
	ErrInsufficientSamples  = errors.New("manchester: insufficient samples")
	ErrNonCompliantWidth    = errors.New("manchester: non-compliant bit width")
	ErrInsufficientBits     = errors.New("manchester: insufficient bits decoded")
	ErrNonCompliantBitCount = errors.New("manchester: non-compliant bit count")

	errSymbolMismatch = errors.New("manchester: symbol pair is not a transition")
)
