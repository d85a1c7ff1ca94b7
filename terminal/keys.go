package terminal

import (
	"time"
	"unicode"

	"github.com/adrichey/chip8vm/emulator"
)

// Terminals only report key presses, so a key counts as held for this long after its last
// press or auto-repeat.
const KEY_HOLD_DURATION = time.Second / 5

// Same layout as the SDL frontend, addressed by the character the key types.
var keymap = map[rune]emulator.Key{
	'x': emulator.Key0,
	'1': emulator.Key1,
	'2': emulator.Key2,
	'3': emulator.Key3,
	'q': emulator.Key4,
	'w': emulator.Key5,
	'e': emulator.Key6,
	'a': emulator.Key7,
	's': emulator.Key8,
	'd': emulator.Key9,
	'z': emulator.KeyA,
	'c': emulator.KeyB,
	'4': emulator.KeyC,
	'r': emulator.KeyD,
	'f': emulator.KeyE,
	'v': emulator.KeyF,
}

// KeyFor returns the keypad key bound to a typed character, ignoring case.
func KeyFor(ch rune) (emulator.Key, bool) {
	k, ok := keymap[unicode.ToLower(ch)]
	return k, ok
}

// holdTracker turns a stream of presses into press/release pairs.
type holdTracker struct {
	now      func() time.Time
	deadline map[emulator.Key]time.Time
}

func newHoldTracker(clock func() time.Time) *holdTracker {
	return &holdTracker{now: clock, deadline: map[emulator.Key]time.Time{}}
}

// press extends the hold of k. It returns true if k was not already held.
func (h *holdTracker) press(k emulator.Key) bool {
	_, held := h.deadline[k]
	h.deadline[k] = h.now().Add(KEY_HOLD_DURATION)
	return !held
}

// expired removes and returns the keys whose hold ran out.
func (h *holdTracker) expired() []emulator.Key {
	var keys []emulator.Key
	now := h.now()
	for k, d := range h.deadline {
		if !now.Before(d) {
			keys = append(keys, k)
			delete(h.deadline, k)
		}
	}
	return keys
}
