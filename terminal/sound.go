package terminal

import (
	"fmt"
	"time"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const SAMPLE_RATE = beep.SampleRate(44100)
const TONE_HZ = 441
const TONE_VOLUME = 0.2

// squareWave streams an endless square wave at freq Hz.
func squareWave(sr beep.SampleRate, freq int) beep.Streamer {
	period := int(sr) / freq
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := TONE_VOLUME
			if pos >= period/2 {
				v = -TONE_VOLUME
			}
			samples[i][0], samples[i][1] = v, v
			pos = (pos + 1) % period
		}
		return len(samples), true
	})
}

type tone struct {
	samples int
}

func openTone() (*tone, error) {
	if err := speaker.Init(SAMPLE_RATE, SAMPLE_RATE.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &tone{samples: SAMPLE_RATE.N(emulator.TIMER_TICK)}, nil
}

// play sounds the tone for one timer tick.
func (t *tone) play() {
	speaker.Play(beep.Take(t.samples, squareWave(SAMPLE_RATE, TONE_HZ)))
}

func (t *tone) close() {
	speaker.Close()
}
