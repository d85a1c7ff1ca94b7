package emulator

import (
	"fmt"
	"strings"
)

const VIDEO_HEIGHT = 32
const VIDEO_WIDTH = 64

// Sprites are at most 15 rows tall since the row count comes from a single nibble.
const MAX_SPRITE_HEIGHT = 15

// Framebuffer is a snapshot of the monochrome screen, row-major with the origin at the top left.
type Framebuffer [VIDEO_HEIGHT][VIDEO_WIDTH]bool

// String renders the framebuffer with one character per pixel, '#' for lit pixels.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type screen struct {
	pixels Framebuffer

	// Set by every clear and draw, cleared when the host reads it.
	mustDraw bool
}

// A fresh screen asks to be drawn so the host paints the blank window once.
func newScreen() *screen {
	return &screen{mustDraw: true}
}

func (s *screen) clear() {
	s.pixels = Framebuffer{}
	s.mustDraw = true
}

/*
drawSprite XORs the sprite onto the screen at (x, y) and reports whether any lit pixel was struck
by a lit sprite bit. Every sprite byte is one row, most significant bit first. Coordinates wrap
around both edges of the screen.
*/
func (s *screen) drawSprite(sprite []byte, x, y byte) bool {
	if len(sprite) > MAX_SPRITE_HEIGHT {
		panic(fmt.Sprintf("sprite has %d rows, at most %d are supported", len(sprite), MAX_SPRITE_HEIGHT))
	}

	collision := false
	for row, b := range sprite {
		py := (int(y) + row) % VIDEO_HEIGHT
		for bit := 0; bit < 8; bit++ {
			px := (int(x) + bit) % VIDEO_WIDTH
			on := b&(0x80>>bit) != 0

			if on && s.pixels[py][px] {
				collision = true
			}
			s.pixels[py][px] = s.pixels[py][px] != on
		}
	}

	s.mustDraw = true
	return collision
}

// mustRedraw reports whether the screen changed since the last call.
func (s *screen) mustRedraw() bool {
	if s.mustDraw {
		s.mustDraw = false
		return true
	}
	return false
}
