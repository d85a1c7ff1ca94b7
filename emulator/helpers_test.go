package emulator

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

const testRandomByte byte = 0xAB

func testSettings(t *testing.T, clock *fakeClock) Settings {
	t.Helper()

	settings := DefaultSettings()
	settings.Logger = log.NewTestLogger(t)
	settings.Clock = clock.Now
	settings.Random = func() byte { return testRandomByte }
	return settings
}

// assemble turns opcodes into big-endian ROM bytes.
func assemble(program ...uint16) []byte {
	rom := make([]byte, 0, len(program)*2)
	for _, op := range program {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

func newTestMachine(t *testing.T, program ...uint16) (*Machine, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	m, err := New(testSettings(t, clock))
	assert.NoError(t, err)
	assert.NoError(t, m.LoadROM(assemble(program...)))
	return m, clock
}

func stepN(t *testing.T, m *Machine, steps int) Actions {
	t.Helper()

	var actions Actions
	for i := 0; i < steps; i++ {
		var err error
		actions, err = m.Step()
		assert.NoError(t, err)
	}
	return actions
}
