package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

var (
	initOnce sync.Once
	initErr  error
)

// Chime plays the session-complete bell: a generated sine tone, no audio
// assets. The speaker is initialised on first use and playback is
// asynchronous.
func Chime() error {
	initOnce.Do(func() {
		initErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("init speaker: %w", initErr)
	}

	tone, err := generators.SinTone(chimeSampleRate, 432)
	if err != nil {
		return fmt.Errorf("generate chime tone: %w", err)
	}

	bell := &effects.Volume{
		Streamer: beep.Take(chimeSampleRate.N(1200*time.Millisecond), tone),
		Base:     2,
		Volume:   -1,
	}
	speaker.Play(bell)
	return nil
}
