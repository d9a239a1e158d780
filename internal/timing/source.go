package timing

import "time"

// Source supplies measured intervals by position. Implementations are
// read-only from the decoder's point of view.
type Source interface {
	Len() int
	At(i int) Pulse
}

// Pulses is a Source whose intervals carry an explicit level, such as an
// encoder's output replayed in a loopback.
type Pulses []Pulse

func (p Pulses) Len() int       { return len(p) }
func (p Pulses) At(i int) Pulse { return p[i] }

// Capture is a receiver capture of interval durations. Index 0 is the gap
// before the first mark, odd indexes are marks and even indexes are spaces.
type Capture []time.Duration

func (c Capture) Len() int { return len(c) }

func (c Capture) At(i int) Pulse {
	if i%2 == 1 {
		return Pulse{Level: Mark, Duration: c[i]}
	}
	return Pulse{Level: Space, Duration: c[i]}
}

// CaptureFromPulses renders pulses the way a demodulating receiver reports
// them: adjacent intervals of the same level merge into one, and a leading
// space is absorbed by leadingGap. Pulses with level None are dropped.
func CaptureFromPulses(pulses []Pulse, leadingGap time.Duration) Capture {
	out := Capture{leadingGap}
	current := Space
	for _, p := range pulses {
		if p.Level == None {
			continue
		}
		if p.Level == current {
			out[len(out)-1] += p.Duration
			continue
		}
		out = append(out, p.Duration)
		current = p.Level
	}
	return out
}

// Cursor is a read position in a Source. Used counts the ticks already
// consumed from the interval at Offset.
type Cursor struct {
	Offset int
	Used   int
}
