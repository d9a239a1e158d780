package ir

import (
	"errors"
	"sort"
	"sync"

	"github.com/danmuck/irmanchester/internal/timing"
)

var ErrUnknownProtocol = errors.New("ir: unknown protocol")

// Result is a protocol-neutral decode outcome.
type Result struct {
	Protocol string
	Value    uint64
	Address  uint64
	Command  uint64
	Repeat   bool
	Bits     int
}

// Protocol is one line code the registry can send and receive.
type Protocol interface {
	Name() string
	DefaultBits() int
	Carrier() (frequencyKHz, dutyCyclePercent int)
	// Send activates carrier once and emits value to sink. Nothing reaches
	// either when value cannot be encoded.
	Send(carrier Carrier, sink Sink, value uint64, nbits int, repeat uint) error
	Decode(src timing.Source, offset, nbits int, strict bool) (Result, error)
	// Scan retries Decode at successive offsets from from and reports the
	// offset it stopped at.
	Scan(src timing.Source, from, nbits int, strict bool) (Result, int, error)
	// Outcome names err for metrics and logs.
	Outcome(err error) string
}

type Registry struct {
	mu        sync.RWMutex
	protocols map[string]Protocol
}

func NewRegistry(protocols ...Protocol) *Registry {
	r := &Registry{protocols: make(map[string]Protocol, len(protocols))}
	for _, p := range protocols {
		r.Register(p)
	}
	return r
}

// DefaultRegistry holds every protocol this module implements.
func DefaultRegistry() *Registry {
	return NewRegistry(Manchester{})
}

func (r *Registry) Register(p Protocol) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protocols[p.Name()] = p
}

func (r *Registry) Get(name string) (Protocol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.protocols[name]
	return p, ok
}

// Names returns the registered protocol names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.protocols))
	for name := range r.protocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
