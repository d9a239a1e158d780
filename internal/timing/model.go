package timing

import "time"

// Classifier reads the level of the next tick-length symbol from src and
// advances cur past it. None means the interval fits no symbol.
type Classifier interface {
	Next(src Source, cur *Cursor) Level
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(src Source, cur *Cursor) Level

func (f ClassifierFunc) Next(src Source, cur *Cursor) Level {
	return f(src, cur)
}

// Model is a fixed-tick timing model. An interval may span up to MaxWidth
// ticks; any space longer than MaxGap (or than MaxWidth ticks) is treated as
// an inter-message gap.
type Model struct {
	Tick      time.Duration
	MaxGap    time.Duration
	MaxWidth  int
	Tolerance Tolerance
}

var _ Classifier = Model{}

// Classify resolves a single raw duration observed at level to that level
// when it matches one tick, or None otherwise.
func (m Model) Classify(raw time.Duration, observed Level) Level {
	if m.ticks(Pulse{Level: observed, Duration: raw}, 1) == 1 {
		return observed
	}
	return None
}

// Next implements Classifier. Reading past the end of src, or into a gap,
// yields Space without moving the cursor.
func (m Model) Next(src Source, cur *Cursor) Level {
	if cur.Offset >= src.Len() {
		return Space
	}
	p := src.At(cur.Offset)
	if p.Level == Space && m.isGap(p.Duration) {
		return Space
	}
	avail := m.ticks(p, m.maxWidth())
	if avail == 0 {
		return None
	}
	cur.Used++
	if cur.Used >= avail {
		cur.Used = 0
		cur.Offset++
	}
	return p.Level
}

func (m Model) maxWidth() int {
	if m.MaxWidth < 1 {
		return 1
	}
	return m.MaxWidth
}

func (m Model) isGap(d time.Duration) bool {
	delta := m.Tolerance.Delta
	if m.MaxGap > 0 && d > m.MaxGap-delta {
		return true
	}
	return d > time.Duration(m.maxWidth())*m.Tick+delta
}

// ticks returns how many ticks p spans, or 0 when it matches none up to max.
func (m Model) ticks(p Pulse, max int) int {
	for n := 1; n <= max; n++ {
		want := time.Duration(n) * m.Tick
		switch p.Level {
		case Mark:
			if m.Tolerance.MatchMark(p.Duration, want) {
				return n
			}
		case Space:
			if m.Tolerance.MatchSpace(p.Duration, want) {
				return n
			}
		default:
			return 0
		}
	}
	return 0
}
