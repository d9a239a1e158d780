package timing

import (
	"fmt"
	"time"
)

// Level is the carrier state of one interval.
type Level int8

const (
	None Level = iota - 1
	Mark
	Space
)

func (l Level) String() string {
	switch l {
	case Mark:
		return "mark"
	case Space:
		return "space"
	default:
		return "none"
	}
}

// Pulse is one emitted or measured carrier interval.
type Pulse struct {
	Level    Level
	Duration time.Duration
}

func (p Pulse) String() string {
	return fmt.Sprintf("%s(%v)", p.Level, p.Duration)
}
