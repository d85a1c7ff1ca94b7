package emulator

import (
	"context"
	"fmt"
	"time"
)

// Instructions per second used by Run when none is given. The CHIP-8 has no defined clock speed,
// most games play well somewhere around this value.
const DEFAULT_CLOCK_HZ = 700

// The ticker driving Run can't fire more often than once per nanosecond.
const MAX_CLOCK_HZ = int(time.Second)

// KeyPad receives the key events translated by a frontend.
type KeyPad interface {
	PressKey(k Key) error
	UnpressKey(k Key) error
}

// Frontend is the platform the machine is presented on.
type Frontend interface {
	// PollInput forwards pending input events to the keypad. It returns true when the user asked to quit.
	PollInput(keys KeyPad) bool
	// Draw renders a snapshot of the screen.
	Draw(fb *Framebuffer) error
	// Beep plays a short tone.
	Beep()
}

/*
Run is our main loop. It steps the machine hz times per second until the frontend asks to quit,
the context is cancelled or the machine faults.

With each iteration of the loop input is polled, one instruction is executed, and the screen is
drawn and the tone played only when the step asked for it.
*/
func Run(ctx context.Context, m *Machine, fe Frontend, hz int) error {
	if hz <= 0 {
		hz = DEFAULT_CLOCK_HZ
	}
	if hz > MAX_CLOCK_HZ {
		return fmt.Errorf("%d Hz, maximum is %d Hz: %w", hz, MAX_CLOCK_HZ, ErrClockTooFast)
	}

	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if fe.PollInput(m) {
			return nil
		}

		actions, err := m.Step()
		if err != nil {
			return err
		}

		if actions.Redraw {
			fb := m.Framebuffer()
			if err := fe.Draw(&fb); err != nil {
				return fmt.Errorf("drawing frame: %w", err)
			}
		}
		if actions.Beep {
			fe.Beep()
		}
	}
}
