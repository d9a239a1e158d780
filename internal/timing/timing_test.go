package timing

import (
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

const us = time.Microsecond

var testModel = Model{
	Tick:      333 * us,
	MaxGap:    20 * time.Millisecond,
	MaxWidth:  3,
	Tolerance: Tolerance{Delta: 150 * us},
}

func TestToleranceWindow(t *testing.T) {
	c := qt.New(t)

	tol := Tolerance{Delta: 150 * us}
	c.Assert(tol.Low(333*us), qt.Equals, 183*us)
	c.Assert(tol.High(333*us), qt.Equals, 484*us)
	c.Assert(tol.Low(100*us), qt.Equals, time.Duration(0))

	pct := Tolerance{Percent: 25}
	c.Assert(pct.Low(400*us), qt.Equals, 300*us)
	c.Assert(pct.High(400*us), qt.Equals, 501*us)
}

func TestToleranceExcess(t *testing.T) {
	c := qt.New(t)

	tol := Tolerance{Excess: 50 * us}
	c.Assert(tol.MatchMark(550*us, 500*us), qt.IsTrue)
	c.Assert(tol.MatchMark(450*us, 500*us), qt.IsFalse)
	c.Assert(tol.MatchSpace(450*us, 500*us), qt.IsTrue)
	c.Assert(tol.MatchSpace(550*us, 500*us), qt.IsFalse)
}

func TestModelClassify(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		raw      time.Duration
		observed Level
		want     Level
	}{
		{raw: 333 * us, observed: Mark, want: Mark},
		{raw: 333 * us, observed: Space, want: Space},
		{raw: 183 * us, observed: Mark, want: Mark},
		{raw: 484 * us, observed: Space, want: Space},
		{raw: 182 * us, observed: Mark, want: None},
		{raw: 485 * us, observed: Space, want: None},
		{raw: 666 * us, observed: Mark, want: None},
		{raw: 333 * us, observed: None, want: None},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("Classify:%v:%s", tt.raw, tt.observed)
		c.Run(name, func(c *qt.C) {
			c.Assert(testModel.Classify(tt.raw, tt.observed), qt.Equals, tt.want)
		})
	}
}

func TestModelNextSplitsMultiTickIntervals(t *testing.T) {
	c := qt.New(t)

	src := Capture{50 * time.Millisecond, 333 * us, 666 * us, 1000 * us}
	cur := Cursor{Offset: 1}

	c.Assert(testModel.Next(src, &cur), qt.Equals, Mark)
	c.Assert(cur, qt.Equals, Cursor{Offset: 2})
	c.Assert(testModel.Next(src, &cur), qt.Equals, Space)
	c.Assert(cur, qt.Equals, Cursor{Offset: 2, Used: 1})
	c.Assert(testModel.Next(src, &cur), qt.Equals, Space)
	c.Assert(cur, qt.Equals, Cursor{Offset: 3})
	for i := 0; i < 3; i++ {
		c.Assert(testModel.Next(src, &cur), qt.Equals, Mark)
	}
	c.Assert(cur, qt.Equals, Cursor{Offset: 4})

	// past the end reads as an endless space
	c.Assert(testModel.Next(src, &cur), qt.Equals, Space)
	c.Assert(cur, qt.Equals, Cursor{Offset: 4})
}

func TestModelNextGapDoesNotAdvance(t *testing.T) {
	c := qt.New(t)

	src := Pulses{
		{Level: Space, Duration: 100 * time.Millisecond},
		{Level: Mark, Duration: 333 * us},
	}
	cur := Cursor{}
	c.Assert(testModel.Next(src, &cur), qt.Equals, Space)
	c.Assert(testModel.Next(src, &cur), qt.Equals, Space)
	c.Assert(cur, qt.Equals, Cursor{})
}

func TestModelNextOutOfTolerance(t *testing.T) {
	c := qt.New(t)

	src := Pulses{{Level: Mark, Duration: 2 * time.Millisecond}}
	cur := Cursor{}
	c.Assert(testModel.Next(src, &cur), qt.Equals, None)
	c.Assert(cur, qt.Equals, Cursor{})
}

func TestCaptureLevelsByParity(t *testing.T) {
	c := qt.New(t)

	capture := Capture{10 * time.Millisecond, 1 * us, 2 * us}
	c.Assert(capture.At(0).Level, qt.Equals, Space)
	c.Assert(capture.At(1), qt.Equals, Pulse{Level: Mark, Duration: 1 * us})
	c.Assert(capture.At(2).Level, qt.Equals, Space)
}

func TestCaptureFromPulsesMergesLevels(t *testing.T) {
	c := qt.New(t)

	tick := 333 * us
	pulses := []Pulse{
		{Level: Space, Duration: tick},
		{Level: Mark, Duration: tick},
		{Level: Mark, Duration: tick},
		{Level: Space, Duration: tick},
		{Level: None, Duration: tick},
		{Level: Space, Duration: 100 * time.Millisecond},
	}
	got := CaptureFromPulses(pulses, 50*time.Millisecond)
	c.Assert(got, qt.DeepEquals, Capture{
		50*time.Millisecond + tick,
		2 * tick,
		tick + 100*time.Millisecond,
	})
}

func TestClassifierFunc(t *testing.T) {
	c := qt.New(t)

	calls := 0
	var cl Classifier = ClassifierFunc(func(src Source, cur *Cursor) Level {
		calls++
		cur.Offset++
		return Mark
	})
	cur := Cursor{}
	c.Assert(cl.Next(Pulses{}, &cur), qt.Equals, Mark)
	c.Assert(calls, qt.Equals, 1)
	c.Assert(cur.Offset, qt.Equals, 1)
}
