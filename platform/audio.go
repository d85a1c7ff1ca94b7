package platform

import (
	"encoding/binary"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const SAMPLE_RATE = 44100

// 441Hz gives a period of exactly 100 samples, so a tone made of whole periods
// can be queued back to back without clicks.
const TONE_HZ = 441
const TONE_PERIODS = 7
const TONE_VOLUME = 3000

// Stop queueing once this much sound is pending, the tone would lag behind the timer otherwise.
const MAX_QUEUED_BYTES = 4 * TONE_PERIODS * (SAMPLE_RATE / TONE_HZ) * 2

type speaker struct {
	device sdl.AudioDeviceID
	tone   []byte
}

func openSpeaker() (*speaker, error) {
	want := &sdl.AudioSpec{
		Freq:     SAMPLE_RATE,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  512,
	}

	device, err := sdl.OpenAudioDevice("", false, want, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	sdl.PauseAudioDevice(device, false)

	return &speaker{device: device, tone: squareWave()}, nil
}

// squareWave returns little-endian signed 16-bit samples of the beep.
func squareWave() []byte {
	period := SAMPLE_RATE / TONE_HZ
	samples := TONE_PERIODS * period
	tone := make([]byte, samples*2)

	for i := 0; i < samples; i++ {
		value := int16(TONE_VOLUME)
		if i%period >= period/2 {
			value = -TONE_VOLUME
		}
		binary.LittleEndian.PutUint16(tone[i*2:], uint16(value))
	}
	return tone
}

func (s *speaker) beep() error {
	if sdl.GetQueuedAudioSize(s.device) > MAX_QUEUED_BYTES {
		return nil
	}
	return sdl.QueueAudio(s.device, s.tone)
}

func (s *speaker) close() {
	sdl.CloseAudioDevice(s.device)
}
