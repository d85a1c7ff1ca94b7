package emulator

import (
	"fmt"
	"unicode"
)

/*
Key Mappings are done by the frontends. The machine only knows the hex keypad:

	+-+-+-+-+
	|1|2|3|C|
	+-+-+-+-+
	|4|5|6|D|
	+-+-+-+-+
	|7|8|9|E|
	+-+-+-+-+
	|A|0|B|F|
	+-+-+-+-+
*/
type Key byte

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

const KEY_COUNT = 16

// Valid reports whether k is one of the 16 keypad keys.
func (k Key) Valid() bool {
	return k < KEY_COUNT
}

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", byte(k))
	}
	return fmt.Sprintf("%X", byte(k))
}

// ParseKey maps the symbols 0-9 and A-F (either case) to their key.
func ParseKey(r rune) (Key, error) {
	switch r = unicode.ToUpper(r); {
	case r >= '0' && r <= '9':
		return Key(r - '0'), nil
	case r >= 'A' && r <= 'F':
		return Key(r-'A') + KeyA, nil
	}
	return 0, fmt.Errorf("%q: %w", r, ErrInvalidKey)
}

/*
Keyboard tracks which keys are held down and implements the wait used by Fx0A.

GetKey puts the keyboard in the waiting state. While waiting, the first key pressed is latched and
handed out by the next GetKey call, which also ends the wait. The machine keeps re-running Fx0A
until that happens.
*/
type Keyboard struct {
	keys        [KEY_COUNT]bool
	waiting     bool
	lastPressed *Key
}

// Press marks k as held. While waiting, the first press is latched for GetKey.
func (kb *Keyboard) Press(k Key) {
	mustBeValid(k)
	kb.keys[k] = true
	if kb.waiting && kb.lastPressed == nil {
		kb.lastPressed = &k
	}
}

// Unpress marks k as released. It never touches the latch.
func (kb *Keyboard) Unpress(k Key) {
	mustBeValid(k)
	kb.keys[k] = false
}

// IsPressed reports whether k is held.
func (kb *Keyboard) IsPressed(k Key) bool {
	mustBeValid(k)
	return kb.keys[k]
}

// GetKey returns the latched key and ends the wait. When nothing is latched it starts
// (or continues) waiting and returns false.
func (kb *Keyboard) GetKey() (Key, bool) {
	if kb.waiting && kb.lastPressed != nil {
		k := *kb.lastPressed
		kb.lastPressed = nil
		kb.waiting = false
		return k, true
	}
	kb.waiting = true
	return 0, false
}

// IsWaiting reports whether a GetKey call is pending.
func (kb *Keyboard) IsWaiting() bool {
	return kb.waiting
}

func mustBeValid(k Key) {
	if !k.Valid() {
		panic(fmt.Sprintf("key out of range: %d", byte(k)))
	}
}
