package emulator

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestGetKeyNotWaiting(t *testing.T) {
	var kb Keyboard

	_, ok := kb.GetKey()
	assert.Equal(t, false, ok)
	assert.Equal(t, true, kb.IsWaiting())
}

func TestGetKeyNotPressed(t *testing.T) {
	kb := Keyboard{waiting: true}

	_, ok := kb.GetKey()
	assert.Equal(t, false, ok)
	assert.Equal(t, true, kb.IsWaiting())
}

func TestGetKeyPressed(t *testing.T) {
	var kb Keyboard

	kb.GetKey()
	kb.Press(KeyF)

	key, ok := kb.GetKey()
	assert.Equal(t, true, ok)
	assert.Equal(t, KeyF, key)
	assert.Equal(t, false, kb.IsWaiting())
	assert.Equal(t, true, kb.lastPressed == nil)
}

func TestPressWithoutWaitDoesNotLatch(t *testing.T) {
	var kb Keyboard

	kb.Press(Key3)
	assert.Equal(t, true, kb.IsPressed(Key3))

	// the key was down before the wait started
	_, ok := kb.GetKey()
	assert.Equal(t, false, ok)
	_, ok = kb.GetKey()
	assert.Equal(t, false, ok)
}

func TestFirstPressWins(t *testing.T) {
	var kb Keyboard

	kb.GetKey()
	kb.Press(Key1)
	kb.Press(Key2)

	key, ok := kb.GetKey()
	assert.Equal(t, true, ok)
	assert.Equal(t, Key1, key)
}

func TestUnpressKeepsLatch(t *testing.T) {
	var kb Keyboard

	kb.GetKey()
	kb.Press(KeyA)
	kb.Unpress(KeyA)
	assert.Equal(t, false, kb.IsPressed(KeyA))

	key, ok := kb.GetKey()
	assert.Equal(t, true, ok)
	assert.Equal(t, KeyA, key)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		r    rune
		want Key
	}{
		{'0', Key0},
		{'9', Key9},
		{'A', KeyA},
		{'f', KeyF},
	}
	for _, tt := range tests {
		key, err := ParseKey(tt.r)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, key)
	}

	for _, r := range []rune{'G', 'z', ' ', '-'} {
		if _, err := ParseKey(r); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ParseKey(%q): got %v, want %v", r, err, ErrInvalidKey)
		}
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "B", KeyB.String())
	assert.Equal(t, "Key(16)", Key(16).String())
}

func TestInvalidKeyPanics(t *testing.T) {
	var kb Keyboard

	defer func() {
		if recover() == nil {
			t.Error("pressing key 0x10 did not panic")
		}
	}()
	kb.Press(Key(0x10))
}
