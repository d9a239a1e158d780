package ir

import (
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/irmanchester/internal/logging"
	"github.com/danmuck/irmanchester/internal/observability"
	"github.com/danmuck/irmanchester/internal/timing"
)

// Sender encodes by protocol name and drives a carrier and sink.
type Sender struct {
	registry *Registry
	carrier  Carrier
	sink     Sink
	log      logging.Logger
}

func NewSender(registry *Registry, carrier Carrier, sink Sink, log logging.Logger) *Sender {
	if log == nil {
		log = logging.Nop{}
	}
	return &Sender{registry: registry, carrier: carrier, sink: sink, log: log}
}

// countingSink counts pulses on their way to the wrapped sink.
type countingSink struct {
	Sink
	pulses int
}

func (c *countingSink) Mark(d time.Duration) {
	c.pulses++
	c.Sink.Mark(d)
}

func (c *countingSink) Space(d time.Duration) {
	c.pulses++
	c.Sink.Space(d)
}

// Send encodes value with the named protocol, activates the carrier once and
// emits every pulse. Nothing reaches the carrier or sink when encoding fails.
func (s *Sender) Send(name string, value uint64, nbits int, repeat uint) error {
	proto, ok := s.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProtocol, name)
	}
	sink := &countingSink{Sink: s.sink}
	err := proto.Send(s.carrier, sink, value, nbits, repeat)
	observability.RecordEncode(proto.Name(), proto.Outcome(err), sink.pulses)
	if err != nil {
		s.log.Warn("send failed", logging.Fields{
			"protocol": proto.Name(),
			"bits":     nbits,
			"error":    err.Error(),
		})
		return fmt.Errorf("send %s: %w", proto.Name(), err)
	}
	s.log.Debug("sent", logging.Fields{
		"protocol": proto.Name(),
		"value":    value,
		"bits":     nbits,
		"repeat":   repeat,
		"pulses":   sink.pulses,
	})
	return nil
}

// Receiver decodes captures by protocol name.
type Receiver struct {
	registry *Registry
	log      logging.Logger
	now      func() time.Time
}

func NewReceiver(registry *Registry, log logging.Logger) *Receiver {
	if log == nil {
		log = logging.Nop{}
	}
	return &Receiver{registry: registry, log: log, now: time.Now}
}

// Decode runs one decode attempt of the named protocol.
func (r *Receiver) Decode(name string, src timing.Source, offset, nbits int, strict bool) (Result, error) {
	proto, ok := r.registry.Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownProtocol, name)
	}
	res, _, err := r.decode(proto, src, offset, nbits, strict, false)
	return res, err
}

// Scan retries the named protocol at successive offsets from from and
// returns the offset it stopped at.
func (r *Receiver) Scan(name string, src timing.Source, from, nbits int, strict bool) (Result, int, error) {
	proto, ok := r.registry.Get(name)
	if !ok {
		return Result{}, from, fmt.Errorf("%w: %s", ErrUnknownProtocol, name)
	}
	return r.decode(proto, src, from, nbits, strict, true)
}

// DecodeAny tries every registered protocol at its default width in lenient
// mode and returns the first success.
func (r *Receiver) DecodeAny(src timing.Source, offset int) (Result, error) {
	res, _, err := r.any(src, offset, false)
	return res, err
}

// ScanAny is DecodeAny with every protocol scanning from from.
func (r *Receiver) ScanAny(src timing.Source, from int) (Result, int, error) {
	return r.any(src, from, true)
}

func (r *Receiver) any(src timing.Source, offset int, scan bool) (Result, int, error) {
	var errs []error
	for _, name := range r.registry.Names() {
		proto, _ := r.registry.Get(name)
		res, at, err := r.decode(proto, src, offset, proto.DefaultBits(), false, scan)
		if err == nil {
			return res, at, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if len(errs) == 0 {
		return Result{}, offset, ErrUnknownProtocol
	}
	return Result{}, offset, errors.Join(errs...)
}

func (r *Receiver) decode(proto Protocol, src timing.Source, offset, nbits int, strict, scan bool) (Result, int, error) {
	start := r.now()
	var (
		res Result
		at  = offset
		err error
	)
	if scan {
		res, at, err = proto.Scan(src, offset, nbits, strict)
	} else {
		res, err = proto.Decode(src, offset, nbits, strict)
	}
	outcome := proto.Outcome(err)
	observability.RecordDecode(proto.Name(), outcome, res.Bits, r.now().Sub(start))
	if err != nil {
		r.log.Debug("decode failed", logging.Fields{
			"protocol": proto.Name(),
			"offset":   at,
			"bits":     nbits,
			"strict":   strict,
			"scan":     scan,
			"outcome":  outcome,
		})
		return Result{}, at, err
	}
	r.log.Info("decoded", logging.Fields{
		"protocol": res.Protocol,
		"offset":   at,
		"value":    fmt.Sprintf("%#x", res.Value),
		"address":  res.Address,
		"command":  res.Command,
		"bits":     res.Bits,
	})
	return res, at, nil
}
