// Package terminal presents the machine inside a text terminal using termbox.
package terminal

import (
	"fmt"
	"time"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/log"
)

// Each cell shows two pixel rows, the upper one in the foreground of a half block.
const (
	upperHalf = '▀'
	lowerHalf = '▄'
	fullBlock = '█'
)

const foreground = termbox.ColorWhite
const background = termbox.ColorDefault

// Terminal is the termbox frontend.
type Terminal struct {
	events  chan termbox.Event
	done    chan struct{}
	stopped chan struct{}
	held    *holdTracker
	tone    *tone
	logger  *log.Logger

	// termbox.PollEvent and termbox.Interrupt outside of tests
	poll      func() termbox.Event
	interrupt func()
}

// New takes over the terminal. The tone is optional, New keeps going silently if no audio
// output can be opened.
func New(logger *log.Logger) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := newTerminal(logger, termbox.PollEvent, termbox.Interrupt)

	tone, err := openTone()
	if err != nil {
		logger.Warn("Sound disabled", log.Err(err))
	} else {
		t.tone = tone
	}

	go t.pollEvents()

	return t, nil
}

func newTerminal(logger *log.Logger, poll func() termbox.Event, interrupt func()) *Terminal {
	return &Terminal{
		events:    make(chan termbox.Event, 64),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		held:      newHoldTracker(time.Now),
		logger:    logger,
		poll:      poll,
		interrupt: interrupt,
	}
}

// pollEvents forwards events until it is interrupted. Once done is closed events are
// dropped, so the loop always gets back to poll and sees the interrupt.
func (t *Terminal) pollEvents() {
	defer close(t.stopped)

	for {
		ev := t.poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
		}
	}
}

func (t *Terminal) stopPolling() {
	close(t.done)
	t.interrupt()
	<-t.stopped
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.stopPolling()
	if t.tone != nil {
		t.tone.close()
	}
	termbox.Close()
}

// PollInput forwards typed keys and releases the ones whose hold expired. Escape or ctrl-c quits.
func (t *Terminal) PollInput(keys emulator.KeyPad) bool {
drain:
	for {
		select {
		case ev := <-t.events:
			if t.handle(ev, keys) {
				return true
			}
		default:
			break drain
		}
	}

	for _, k := range t.held.expired() {
		if err := keys.UnpressKey(k); err != nil {
			t.logger.Error("Releasing key failed", log.Stringer("key", k), log.Err(err))
		}
	}
	return false
}

func (t *Terminal) handle(ev termbox.Event, keys emulator.KeyPad) bool {
	switch ev.Type {
	case termbox.EventError:
		t.logger.Error("Reading terminal input failed", log.Err(ev.Err))
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
			return true
		}
		k, ok := KeyFor(ev.Ch)
		if !ok {
			return false
		}
		if t.held.press(k) {
			if err := keys.PressKey(k); err != nil {
				t.logger.Error("Forwarding key failed", log.Stringer("key", k), log.Err(err))
			}
		}
	}
	return false
}

// Draw renders the screen in the top left corner, 64 columns by 16 rows.
func (t *Terminal) Draw(fb *emulator.Framebuffer) error {
	if err := termbox.Clear(background, background); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	for y := 0; y < emulator.VIDEO_HEIGHT; y += 2 {
		for x := 0; x < emulator.VIDEO_WIDTH; x++ {
			termbox.SetCell(x, y/2, cellFor(fb[y][x], fb[y+1][x]), foreground, background)
		}
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

func (t *Terminal) Beep() {
	if t.tone != nil {
		t.tone.play()
	}
}

func cellFor(upper, lower bool) rune {
	switch {
	case upper && lower:
		return fullBlock
	case upper:
		return upperHalf
	case lower:
		return lowerHalf
	default:
		return ' '
	}
}
