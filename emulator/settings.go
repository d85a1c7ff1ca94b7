package emulator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Quirks toggles behaviour that differs between CHIP-8 interpreters.
// The zero value gives the behaviour most modern ROMs expect.
type Quirks struct {
	// ShiftUsesVY makes 8xy6 and 8xyE shift Vy into Vx, as the COSMAC VIP did.
	// When false only Vx is shifted and Vy is ignored.
	ShiftUsesVY bool
	// LoadStoreIncrementsI makes Fx55 and Fx65 leave I pointing past the last copied byte.
	LoadStoreIncrementsI bool
}

// Settings holds the configuration parameters for a Machine.
type Settings struct {
	// Address where ROMs are loaded and execution starts.
	ROMOrigin uint16
	Quirks    Quirks
	// Clock is read by both timers on every step. It should carry a monotonic reading,
	// which time.Now does.
	Clock func() time.Time
	// Random supplies the bytes masked by Cxkk.
	Random func() byte
	Logger *log.Logger
}

// DefaultSettings returns settings which mimic the original CHIP-8 interpreter.
func DefaultSettings() Settings {
	return Settings{
		ROMOrigin: START_ADDRESS,
		Clock:     time.Now,
		Random:    randomByte,
		Logger:    newDefaultLogger(),
	}
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Settings) Validate() error {
	if int(s.ROMOrigin) > MEMORY_SIZE-2 {
		return fmt.Errorf("rom origin must be <= %#04x, got %#04x", MEMORY_SIZE-2, s.ROMOrigin)
	}
	if s.ROMOrigin < FONTSET_START_ADDRESS+uint16(len(fontset)) {
		return fmt.Errorf("rom origin %#04x overlaps the font set", s.ROMOrigin)
	}
	if s.Clock == nil {
		return fmt.Errorf("clock must not be nil")
	}
	if s.Random == nil {
		return fmt.Errorf("random source must not be nil")
	}
	return nil
}

func newDefaultLogger() *log.Logger {
	return log.NewWithConfig(log.DefaultConfig())
}

func randomByte() byte {
	return byte(rand.UintN(256))
}
