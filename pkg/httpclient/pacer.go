package httpclient

import (
	"time"
)

// Pacer enforces a fixed minimum delay between consecutive calls to Wait.
// The first call never sleeps. The clock and sleep functions are injectable
// so tests can run without real delays.
type Pacer struct {
	delay time.Duration
	now   func() time.Time
	sleep func(time.Duration)
	last  time.Time
}

// NewPacer creates a pacer backed by the real clock.
func NewPacer(delay time.Duration) *Pacer {
	return NewPacerWithClock(delay, time.Now, time.Sleep)
}

// NewPacerWithClock creates a pacer with injected clock and sleep functions.
func NewPacerWithClock(delay time.Duration, now func() time.Time, sleep func(time.Duration)) *Pacer {
	return &Pacer{
		delay: delay,
		now:   now,
		sleep: sleep,
	}
}

// Wait blocks until at least the configured delay has elapsed since the
// previous call, then records the current time as the new reference point.
func (p *Pacer) Wait() {
	if p.delay <= 0 {
		return
	}

	current := p.now()
	if !p.last.IsZero() {
		elapsed := current.Sub(p.last)
		if elapsed < p.delay {
			p.sleep(p.delay - elapsed)
			current = p.now()
		}
	}
	p.last = current
}
