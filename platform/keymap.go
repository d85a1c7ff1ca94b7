package platform

import (
	"github.com/adrichey/chip8vm/emulator"
	"github.com/veandco/go-sdl2/sdl"
)

/*
Key Mappings:
Keypad       Keyboard
+-+-+-+-+    +-+-+-+-+
|1|2|3|C|    |1|2|3|4|
+-+-+-+-+    +-+-+-+-+
|4|5|6|D|    |Q|W|E|R|
+-+-+-+-+ => +-+-+-+-+
|7|8|9|E|    |A|S|D|F|
+-+-+-+-+    +-+-+-+-+
|A|0|B|F|    |Z|X|C|V|
+-+-+-+-+    +-+-+-+-+
*/
var keymap = map[sdl.Keycode]emulator.Key{
	sdl.K_x: emulator.Key0,
	sdl.K_1: emulator.Key1,
	sdl.K_2: emulator.Key2,
	sdl.K_3: emulator.Key3,
	sdl.K_q: emulator.Key4,
	sdl.K_w: emulator.Key5,
	sdl.K_e: emulator.Key6,
	sdl.K_a: emulator.Key7,
	sdl.K_s: emulator.Key8,
	sdl.K_d: emulator.Key9,
	sdl.K_z: emulator.KeyA,
	sdl.K_c: emulator.KeyB,
	sdl.K_4: emulator.KeyC,
	sdl.K_r: emulator.KeyD,
	sdl.K_f: emulator.KeyE,
	sdl.K_v: emulator.KeyF,
}

// KeyFor returns the keypad key bound to a host key.
func KeyFor(code sdl.Keycode) (emulator.Key, bool) {
	k, ok := keymap[code]
	return k, ok
}
