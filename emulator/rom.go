package emulator

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// LoadROM copies a program into memory at the ROM origin. The bytes are not validated,
// invalid instructions only fault once they are executed.
func (m *Machine) LoadROM(rom []byte) error {
	if free := MEMORY_SIZE - int(m.origin); len(rom) > free {
		return fmt.Errorf("%d bytes, %d available: %w", len(rom), free, ErrROMTooLarge)
	}
	if err := m.memory.WriteBlock(m.origin, rom); err != nil {
		return err
	}

	m.logger.Debug("ROM loaded",
		log.Hex("origin", m.origin),
		log.Int("size", len(rom)))
	return nil
}

// LoadROMFile reads a ROM from disk and loads it.
func (m *Machine) LoadROMFile(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("loading %s: %w", filepath, err)
	}
	return nil
}
