package timing

import "time"

// Tolerance is the acceptance window policy for a measured duration.
// Percent scales the desired duration, Excess shifts marks up and spaces
// down, Delta widens the window by a fixed amount on both sides.
type Tolerance struct {
	Percent uint8
	Excess  time.Duration
	Delta   time.Duration
}

// Low returns the shortest duration accepted for desired.
func (t Tolerance) Low(desired time.Duration) time.Duration {
	low := desired*time.Duration(100-int(t.Percent))/100 - t.Delta
	if low < 0 {
		return 0
	}
	return low
}

// High returns the longest duration accepted for desired.
func (t Tolerance) High(desired time.Duration) time.Duration {
	return desired*time.Duration(100+int(t.Percent))/100 + time.Microsecond + t.Delta
}

// Match reports whether measured falls inside the window around desired.
func (t Tolerance) Match(measured, desired time.Duration) bool {
	return measured >= t.Low(desired) && measured <= t.High(desired)
}

// MatchMark matches a carrier-on interval; receivers stretch marks by Excess.
func (t Tolerance) MatchMark(measured, desired time.Duration) bool {
	return t.Match(measured, desired+t.Excess)
}

// MatchSpace matches a carrier-off interval; receivers shrink spaces by Excess.
func (t Tolerance) MatchSpace(measured, desired time.Duration) bool {
	return t.Match(measured, desired-t.Excess)
}
