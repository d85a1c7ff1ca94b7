// Package platform presents the machine in an SDL2 window.
package platform

import (
	"fmt"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const WINDOW_TITLE = "Chip8 Emulator"
const DEFAULT_SCALE = 15

var (
	backgroundColor = sdl.Color{R: 0, G: 0, B: 0, A: 255}
	foregroundColor = sdl.Color{R: 255, G: 255, B: 255, A: 255}
)

// Platform is the SDL frontend. All methods must be called from the thread that called New,
// which SDL requires to be the main thread.
type Platform struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	speaker  *speaker
	scale    int32
	logger   *log.Logger

	// reused between frames
	rects []sdl.Rect
}

// New opens a window scaled up from the 64x32 screen. A missing audio device is not fatal,
// the frontend runs silently.
func New(title string, scale int, logger *log.Logger) (*Platform, error) {
	if scale <= 0 {
		scale = DEFAULT_SCALE
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	p := &Platform{scale: int32(scale), logger: logger}

	winWidth, winHeight := int32(emulator.VIDEO_WIDTH)*p.scale, int32(emulator.VIDEO_HEIGHT)*p.scale
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	p.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	p.renderer = renderer

	speaker, err := openSpeaker()
	if err != nil {
		logger.Warn("Sound disabled", log.Err(err))
	} else {
		p.speaker = speaker
	}

	return p, nil
}

// Close releases everything New created.
func (p *Platform) Close() {
	if p.speaker != nil {
		p.speaker.close()
	}
	if p.renderer != nil {
		_ = p.renderer.Destroy()
	}
	if p.window != nil {
		_ = p.window.Destroy()
	}
	sdl.Quit()
}

// PollInput drains the SDL event queue. Closing the window or pressing escape quits.
func (p *Platform) PollInput(keys emulator.KeyPad) bool {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if t.Keysym.Sym == sdl.K_ESCAPE {
				if t.Type == sdl.KEYDOWN {
					quit = true
				}
				continue
			}

			key, ok := KeyFor(t.Keysym.Sym)
			if !ok {
				continue
			}

			var err error
			if t.Type == sdl.KEYDOWN {
				err = keys.PressKey(key)
			} else {
				err = keys.UnpressKey(key)
			}
			if err != nil {
				p.logger.Error("Forwarding key failed", log.Stringer("key", key), log.Err(err))
			}
		}
	}

	return quit
}

// Draw paints every lit pixel as a scale x scale rectangle.
func (p *Platform) Draw(fb *emulator.Framebuffer) error {
	p.rects = p.rects[:0]
	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] {
				p.rects = append(p.rects, sdl.Rect{
					X: int32(x) * p.scale,
					Y: int32(y) * p.scale,
					W: p.scale,
					H: p.scale,
				})
			}
		}
	}

	if err := p.setColor(backgroundColor); err != nil {
		return err
	}
	if err := p.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing window: %w", err)
	}

	if len(p.rects) > 0 {
		if err := p.setColor(foregroundColor); err != nil {
			return err
		}
		if err := p.renderer.FillRects(p.rects); err != nil {
			return fmt.Errorf("drawing pixels: %w", err)
		}
	}

	p.renderer.Present()
	return nil
}

// Beep queues one timer tick worth of tone.
func (p *Platform) Beep() {
	if p.speaker == nil {
		return
	}
	if err := p.speaker.beep(); err != nil {
		p.logger.Warn("Queueing beep failed", log.Err(err))
	}
}

func (p *Platform) setColor(c sdl.Color) error {
	if err := p.renderer.SetDrawColor(c.R, c.G, c.B, c.A); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	return nil
}
