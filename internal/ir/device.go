package ir

import (
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/irmanchester/internal/manchester"
	"github.com/danmuck/irmanchester/internal/timing"
)

var ErrInvalidCarrier = errors.New("ir: invalid carrier frequency")

// Carrier and Sink are the hardware collaborators every protocol drives.
type (
	Carrier = manchester.Carrier
	Sink    = manchester.Sink
)

// Activation is one recorded carrier activation.
type Activation struct {
	FrequencyKHz     int
	DutyCyclePercent int
}

// Recorder is an in-memory Carrier and Sink. It stands in for hardware in
// loopbacks and tests.
type Recorder struct {
	Activations []Activation
	Pulses      []timing.Pulse
}

func (r *Recorder) Activate(frequencyKHz, dutyCyclePercent int) error {
	r.Activations = append(r.Activations, Activation{
		FrequencyKHz:     frequencyKHz,
		DutyCyclePercent: dutyCyclePercent,
	})
	return nil
}

func (r *Recorder) Mark(d time.Duration) {
	r.Pulses = append(r.Pulses, timing.Pulse{Level: timing.Mark, Duration: d})
}

func (r *Recorder) Space(d time.Duration) {
	r.Pulses = append(r.Pulses, timing.Pulse{Level: timing.Space, Duration: d})
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Activations = nil
	r.Pulses = nil
}

// PWM is the modulation peripheral driving the IR LED.
type PWM interface {
	Configure(period time.Duration) error
	Top() uint32
	Set(value uint32)
}

// Transmitter drives an IR LED through a PWM carrier. Marks hold the PWM at
// the configured duty cycle, spaces leave it off.
type Transmitter struct {
	pwm   PWM
	duty  uint32
	sleep func(time.Duration)
}

func NewTransmitter(pwm PWM) *Transmitter {
	return &Transmitter{pwm: pwm, duty: defaultDutyCycle, sleep: time.Sleep}
}

const defaultDutyCycle = 33

// Activate configures the PWM period for frequencyKHz. A duty cycle outside
// 1..100 falls back to 33%.
func (tx *Transmitter) Activate(frequencyKHz, dutyCyclePercent int) error {
	if frequencyKHz <= 0 {
		return fmt.Errorf("%w: %d kHz", ErrInvalidCarrier, frequencyKHz)
	}
	if dutyCyclePercent < 1 || dutyCyclePercent > 100 {
		dutyCyclePercent = defaultDutyCycle
	}
	tx.duty = uint32(dutyCyclePercent)
	return tx.pwm.Configure(time.Second / time.Duration(frequencyKHz*1000))
}

func (tx *Transmitter) Mark(d time.Duration) {
	tx.pwm.Set(tx.pwm.Top() * tx.duty / 100)
	tx.sleep(d)
	tx.pwm.Set(0)
}

func (tx *Transmitter) Space(d time.Duration) {
	tx.sleep(d)
}
