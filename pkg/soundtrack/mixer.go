package soundtrack

import (
	"time"

	"github.com/go-audio/audio"
	"github.com/pkg/errors"

	"github.com/fablecast/fablecast/pkg/audio_utils"
)

// MixOptions control how the background music sits under the narration.
type MixOptions struct {
	MusicGainDB float64       // applied to the background, negative quiets it
	FadeOut     time.Duration // tail fade on the background
}

func DefaultMixOptions() MixOptions {
	return MixOptions{MusicGainDB: -15, FadeOut: 3 * time.Second}
}

// Mix lays the narration over background music. The background is
// conformed to the narration's sample rate and channel count, looped or
// trimmed to exactly the narration's length, faded out and attenuated.
// The result always has the narration's duration.
func Mix(narration, background *audio.IntBuffer, opts MixOptions) (*audio.IntBuffer, error) {
	if narration == nil || len(narration.Data) == 0 {
		return nil, errors.New("narration is empty")
	}
	if background == nil || len(background.Data) == 0 {
		return nil, errors.New("background is empty")
	}

	mixed := audio_utils.Resample(background, narration.Format.SampleRate)
	mixed = audio_utils.MatchChannels(mixed, narration.Format.NumChannels)
	mixed = audio_utils.LoopToLength(mixed, audio_utils.NumFrames(narration))
	audio_utils.FadeOut(mixed, opts.FadeOut)
	audio_utils.ApplyGain(mixed, opts.MusicGainDB)

	if err := audio_utils.Overlay(mixed, narration); err != nil {
		return nil, errors.Wrap(err, "cannot overlay narration on background")
	}
	return mixed, nil
}
