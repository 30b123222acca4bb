package httpclient

import (
	"testing"
	"time"
)

// fakeClock simulates a clock that only advances when slept on.
type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

func TestPacer_FirstCallDoesNotSleep(t *testing.T) {
	clock := newFakeClock()
	pacer := NewPacerWithClock(time.Second, clock.now, clock.sleep)

	pacer.Wait()

	if len(clock.slept) != 0 {
		t.Errorf("Expected no sleep on first call, got %v", clock.slept)
	}
}

func TestPacer_SecondCallSleepsRemainingDelay(t *testing.T) {
	clock := newFakeClock()
	pacer := NewPacerWithClock(time.Second, clock.now, clock.sleep)

	pacer.Wait()
	clock.current = clock.current.Add(300 * time.Millisecond)
	pacer.Wait()

	if len(clock.slept) != 1 {
		t.Fatalf("Expected exactly one sleep, got %d", len(clock.slept))
	}
	if clock.slept[0] != 700*time.Millisecond {
		t.Errorf("Expected sleep of 700ms, got %v", clock.slept[0])
	}
}

func TestPacer_NoSleepWhenDelayAlreadyElapsed(t *testing.T) {
	clock := newFakeClock()
	pacer := NewPacerWithClock(time.Second, clock.now, clock.sleep)

	pacer.Wait()
	clock.current = clock.current.Add(2 * time.Second)
	pacer.Wait()

	if len(clock.slept) != 0 {
		t.Errorf("Expected no sleep when delay already elapsed, got %v", clock.slept)
	}
}

func TestPacer_ZeroDelayNeverSleeps(t *testing.T) {
	clock := newFakeClock()
	pacer := NewPacerWithClock(0, clock.now, clock.sleep)

	pacer.Wait()
	pacer.Wait()
	pacer.Wait()

	if len(clock.slept) != 0 {
		t.Errorf("Expected no sleeps with zero delay, got %v", clock.slept)
	}
}

func TestPacer_ConsecutiveCallsEachWait(t *testing.T) {
	clock := newFakeClock()
	pacer := NewPacerWithClock(time.Second, clock.now, clock.sleep)

	// Three back-to-back calls with no time passing between them: the second
	// and third must each sleep a full delay.
	pacer.Wait()
	pacer.Wait()
	pacer.Wait()

	if len(clock.slept) != 2 {
		t.Fatalf("Expected two sleeps, got %d", len(clock.slept))
	}
	for i, d := range clock.slept {
		if d != time.Second {
			t.Errorf("Sleep %d: expected 1s, got %v", i, d)
		}
	}
}
