package emulator

const STACK_SIZE = 16

// Stack holds return addresses for CALL and RET.
type Stack struct {
	addresses [STACK_SIZE]uint16

	// The Stack Pointer keeps track of our position in the stack
	pointer byte
}

// Push stores a return address.
func (s *Stack) Push(address uint16) error {
	if s.pointer >= STACK_SIZE {
		return ErrStackOverflow
	}
	s.addresses[s.pointer] = address
	s.pointer++
	return nil
}

// Pop removes and returns the most recently pushed address.
func (s *Stack) Pop() (uint16, error) {
	if s.pointer == 0 {
		return 0, ErrStackUnderflow
	}
	s.pointer--
	return s.addresses[s.pointer], nil
}

// Len returns the number of stored addresses.
func (s *Stack) Len() int {
	return int(s.pointer)
}
