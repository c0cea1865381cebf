package soundtrack

import (
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablecast/fablecast/pkg/audio_utils"
)

func buffer(sampleRate, numChannels, numFrames, value int) *audio.IntBuffer {
	data := make([]int, numFrames*numChannels)
	for i := range data {
		data[i] = value
	}
	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: numChannels},
		SourceBitDepth: 16,
	}
}

func TestMixKeepsNarrationLength(t *testing.T) {
	narration := buffer(16000, 1, 16000, 8000) // one second
	background := buffer(16000, 1, 4000, 2000) // shorter, must loop

	mixed, err := Mix(narration, background, DefaultMixOptions())
	require.NoError(t, err)

	assert.Equal(t, 16000, audio_utils.NumFrames(mixed))
	assert.Equal(t, 16000, mixed.Format.SampleRate)
	assert.Equal(t, 1, mixed.Format.NumChannels)
}

func TestMixAttenuatesBackgroundAndKeepsNarration(t *testing.T) {
	narration := buffer(16000, 1, 8000, 8000)
	background := buffer(16000, 1, 8000, 8000)

	mixed, err := Mix(narration, background, MixOptions{MusicGainDB: -20, FadeOut: 0})
	require.NoError(t, err)

	// Background is at one tenth, so the sum sits just above the narration.
	assert.InDelta(t, 8800, mixed.Data[0], 5)
}

func TestMixConformsBackgroundFormat(t *testing.T) {
	narration := buffer(16000, 1, 16000, 5000)
	background := buffer(44100, 2, 44100, 3000) // stereo at a different rate

	mixed, err := Mix(narration, background, DefaultMixOptions())
	require.NoError(t, err)

	assert.Equal(t, 16000, mixed.Format.SampleRate)
	assert.Equal(t, 1, mixed.Format.NumChannels)
	assert.Equal(t, 16000, audio_utils.NumFrames(mixed))
}

func TestMixFadesBackgroundTail(t *testing.T) {
	narration := buffer(1000, 1, 4000, 0) // silent narration isolates the music
	background := buffer(1000, 1, 4000, 10000)

	mixed, err := Mix(narration, background, MixOptions{MusicGainDB: 0, FadeOut: time.Second})
	require.NoError(t, err)

	assert.Equal(t, 10000, mixed.Data[0])
	assert.LessOrEqual(t, mixed.Data[len(mixed.Data)-1], 10)
}

func TestMixRejectsEmptyInputs(t *testing.T) {
	_, err := Mix(nil, buffer(16000, 1, 100, 0), DefaultMixOptions())
	require.Error(t, err)

	_, err = Mix(buffer(16000, 1, 100, 0), nil, DefaultMixOptions())
	require.Error(t, err)
}
