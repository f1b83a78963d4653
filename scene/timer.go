package scene

import "time"

// Timer counts fixed-interval ticks against a clock the caller advances.
// The first Fire arms the timer.
type Timer struct {
	Interval time.Duration
	next     time.Duration
	armed    bool
}

func NewTimer(interval time.Duration) *Timer {
	return &Timer{Interval: interval}
}

// Fire returns how many ticks elapsed up to now. Missed ticks are reported
// together rather than dropped.
func (t *Timer) Fire(now time.Duration) int {
	if t.Interval <= 0 {
		return 0
	}
	if !t.armed {
		t.armed = true
		t.next = now + t.Interval
		return 0
	}
	if now < t.next {
		return 0
	}
	n := int((now-t.next)/t.Interval) + 1
	t.next += time.Duration(n) * t.Interval
	return n
}

// Reset disarms the timer.
func (t *Timer) Reset() { t.armed = false }
