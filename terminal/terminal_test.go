package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/faiface/beep"
	"github.com/google/go-cmp/cmp"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type recordingKeyPad struct {
	events []string
}

func (r *recordingKeyPad) PressKey(k emulator.Key) error {
	r.events = append(r.events, "press "+k.String())
	return nil
}

func (r *recordingKeyPad) UnpressKey(k emulator.Key) error {
	r.events = append(r.events, "release "+k.String())
	return nil
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestTerminal(t *testing.T) (*Terminal, *clock) {
	t.Helper()

	c := &clock{now: time.Unix(0, 0)}
	term := newTerminal(log.NewTestLogger(t), nil, nil)
	term.held = newHoldTracker(c.Now)
	return term, c
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		ch  rune
		key emulator.Key
		ok  bool
	}{
		{'x', emulator.Key0, true},
		{'X', emulator.Key0, true},
		{'4', emulator.KeyC, true},
		{'V', emulator.KeyF, true},
		{'p', 0, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		k, ok := KeyFor(tt.ch)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.key, k)
	}
	assert.Equal(t, emulator.KEY_COUNT, len(keymap))
}

func TestKeysReleaseAfterHold(t *testing.T) {
	term, c := newTestTerminal(t)
	pad := &recordingKeyPad{}

	term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'w'}
	assert.Equal(t, false, term.PollInput(pad))

	// auto-repeat extends the hold without pressing again
	c.now = c.now.Add(KEY_HOLD_DURATION / 2)
	term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'w'}
	assert.Equal(t, false, term.PollInput(pad))

	c.now = c.now.Add(KEY_HOLD_DURATION / 2)
	assert.Equal(t, false, term.PollInput(pad))

	c.now = c.now.Add(KEY_HOLD_DURATION / 2)
	assert.Equal(t, false, term.PollInput(pad))

	want := []string{"press 5", "release 5"}
	if diff := cmp.Diff(want, pad.events); diff != "" {
		t.Errorf("key events mismatch (-want +got):\n%s", diff)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []termbox.Key{termbox.KeyEsc, termbox.KeyCtrlC} {
		term, _ := newTestTerminal(t)
		term.events <- termbox.Event{Type: termbox.EventKey, Key: key}
		assert.Equal(t, true, term.PollInput(&recordingKeyPad{}))
	}
}

func TestIgnoresUnmappedInput(t *testing.T) {
	term, _ := newTestTerminal(t)
	pad := &recordingKeyPad{}

	term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'p'}
	term.events <- termbox.Event{Type: termbox.EventResize, Width: 80, Height: 24}
	term.events <- termbox.Event{Type: termbox.EventError, Err: errors.New("broken pipe")}

	assert.Equal(t, false, term.PollInput(pad))
	assert.Equal(t, 0, len(pad.events))
}

func TestStopPollingWhileQueueIsFull(t *testing.T) {
	source := make(chan termbox.Event)
	term := newTerminal(log.NewTestLogger(t),
		func() termbox.Event { return <-source },
		func() { source <- termbox.Event{Type: termbox.EventInterrupt} })
	term.events = make(chan termbox.Event, 1)

	go term.pollEvents()

	// the second event leaves the poller blocked on the full queue
	source <- termbox.Event{Type: termbox.EventKey, Ch: '1'}
	source <- termbox.Event{Type: termbox.EventKey, Ch: '2'}

	stopped := make(chan struct{})
	go func() {
		term.stopPolling()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("event poller did not stop")
	}

	ev := <-term.events
	assert.Equal(t, '1', ev.Ch)
}

func TestCellFor(t *testing.T) {
	assert.Equal(t, ' ', cellFor(false, false))
	assert.Equal(t, upperHalf, cellFor(true, false))
	assert.Equal(t, lowerHalf, cellFor(false, true))
	assert.Equal(t, fullBlock, cellFor(true, true))
}

func TestSquareWave(t *testing.T) {
	period := int(SAMPLE_RATE) / TONE_HZ
	s := beep.Take(period*2, squareWave(SAMPLE_RATE, TONE_HZ))

	samples := make([][2]float64, period*3)
	n, ok := s.Stream(samples)
	assert.Equal(t, true, ok)
	assert.Equal(t, period*2, n)

	assert.Equal(t, TONE_VOLUME, samples[0][0])
	assert.Equal(t, -TONE_VOLUME, samples[period/2][1])
	assert.Equal(t, TONE_VOLUME, samples[period][0])

	n, ok = s.Stream(samples)
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, n)
}
