package emulator

import "time"

// The CHIP-8 timers count down at 60Hz no matter how fast instructions execute.
const TIMER_TICK = time.Second / 60

/*
Timer is an 8-bit register which decrements at 60Hz until it reaches zero.

Countdown is called once per executed instruction, which is far more often than 60 times per
second. It only decrements when a full tick has elapsed since the last decrement, so the decay
rate follows the wall clock and not the host speed.
*/
type Timer struct {
	register  byte
	tickStart time.Time
	now       func() time.Time
}

func newTimer(clock func() time.Time) Timer {
	return Timer{tickStart: clock(), now: clock}
}

// Countdown decrements the register if it is non-zero and a tick has elapsed. It reports
// whether a decrement happened.
func (t *Timer) Countdown() bool {
	if t.register == 0 {
		return false
	}
	now := t.now()
	if now.Sub(t.tickStart) < TIMER_TICK {
		return false
	}
	t.register--
	t.tickStart = now
	return true
}

// SetTime loads the register and restarts the tick period.
func (t *Timer) SetTime(value byte) {
	t.register = value
	t.tickStart = t.now()
}

// Remaining returns the current register value.
func (t *Timer) Remaining() byte {
	return t.register
}

// SoundTimer is a Timer that asks for a beep on every decrement.
type SoundTimer struct {
	Timer
	beep bool
}

func newSoundTimer(clock func() time.Time) SoundTimer {
	return SoundTimer{Timer: newTimer(clock)}
}

func (t *SoundTimer) Countdown() bool {
	if t.Timer.Countdown() {
		t.beep = true
		return true
	}
	return false
}

// MustBeep reports whether the timer decremented since the last call.
func (t *SoundTimer) MustBeep() bool {
	if t.beep {
		t.beep = false
		return true
	}
	return false
}
