package emulator

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStackLIFO(t *testing.T) {
	var s Stack

	for i := 0; i < STACK_SIZE; i++ {
		assert.NoError(t, s.Push(uint16(0x200+i*2)))
	}
	assert.Equal(t, STACK_SIZE, s.Len())

	for i := STACK_SIZE - 1; i >= 0; i-- {
		address, err := s.Pop()
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x200+i*2), address)
	}
	assert.Equal(t, 0, s.Len())
}

func TestStackOverflow(t *testing.T) {
	var s Stack

	for i := 0; i < STACK_SIZE; i++ {
		assert.NoError(t, s.Push(1))
	}
	if err := s.Push(1); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("push on a full stack: got %v, want %v", err, ErrStackOverflow)
	}
}

func TestStackUnderflow(t *testing.T) {
	var s Stack

	if _, err := s.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("pop on an empty stack: got %v, want %v", err, ErrStackUnderflow)
	}
}
