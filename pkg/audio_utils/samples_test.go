package audio_utils

import (
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constBuffer(sampleRate, numChannels, numFrames, value int) *audio.IntBuffer {
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

func TestNumFrames(t *testing.T) {
	assert.Equal(t, 100, NumFrames(constBuffer(16000, 2, 100, 0)))
	assert.Equal(t, 0, NumFrames(nil))
}

func TestDownmixToMono(t *testing.T) {
	stereo := &audio.IntBuffer{
		Data:           []int{100, 300, -100, -300},
		Format:         &audio.Format{SampleRate: 16000, NumChannels: 2},
		SourceBitDepth: 16,
	}
	mono := DownmixToMono(stereo)
	assert.Equal(t, []int{200, -200}, mono.Data)
	assert.Equal(t, 1, mono.Format.NumChannels)
	assert.Equal(t, 16000, mono.Format.SampleRate)
}

func TestMatchChannelsMonoToStereo(t *testing.T) {
	mono := &audio.IntBuffer{
		Data:           []int{5, -5},
		Format:         &audio.Format{SampleRate: 16000, NumChannels: 1},
		SourceBitDepth: 16,
	}
	stereo := MatchChannels(mono, 2)
	assert.Equal(t, []int{5, 5, -5, -5}, stereo.Data)
	assert.Equal(t, 2, stereo.Format.NumChannels)

	// Same channel count passes through untouched.
	assert.Same(t, mono, MatchChannels(mono, 1))
}

func TestResampleHalvesFrameCount(t *testing.T) {
	buf := constBuffer(32000, 1, 32000, 42)
	out := Resample(buf, 16000)
	assert.Equal(t, 16000, out.Format.SampleRate)
	assert.Equal(t, 16000, NumFrames(out))
	assert.Equal(t, 42, out.Data[0])
	assert.Equal(t, 42, out.Data[len(out.Data)-1])
}

func TestLoopToLength(t *testing.T) {
	buf := &audio.IntBuffer{
		Data:           []int{1, 2, 3},
		Format:         &audio.Format{SampleRate: 16000, NumChannels: 1},
		SourceBitDepth: 16,
	}
	looped := LoopToLength(buf, 8)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1, 2}, looped.Data)

	trimmed := LoopToLength(buf, 2)
	assert.Equal(t, []int{1, 2}, trimmed.Data)
}

func TestApplyGainAttenuates(t *testing.T) {
	buf := constBuffer(16000, 1, 4, 10000)
	ApplyGain(buf, -20) // -20 dB is a factor of 0.1
	for _, value := range buf.Data {
		assert.InDelta(t, 1000, value, 1)
	}
}

func TestApplyGainSaturates(t *testing.T) {
	buf := constBuffer(16000, 1, 2, 30000)
	ApplyGain(buf, 6)
	for _, value := range buf.Data {
		assert.Equal(t, 32767, value)
	}
}

func TestFadeOutSilencesTail(t *testing.T) {
	buf := constBuffer(1000, 1, 2000, 10000)
	FadeOut(buf, time.Second) // fades the second half

	assert.Equal(t, 10000, buf.Data[0])
	assert.Equal(t, 10000, buf.Data[999]) // before the fade window
	assert.Less(t, buf.Data[1500], 10000)
	assert.Greater(t, buf.Data[1500], 0)
	assert.LessOrEqual(t, buf.Data[1999], 10)
}

func TestOverlayAddsAndSaturates(t *testing.T) {
	base := constBuffer(16000, 1, 3, 20000)
	over := constBuffer(16000, 1, 3, 20000)
	require.NoError(t, Overlay(base, over))
	for _, value := range base.Data {
		assert.Equal(t, 32767, value)
	}
}

func TestOverlayShorterOverlayLeavesTail(t *testing.T) {
	base := constBuffer(16000, 1, 4, 100)
	over := constBuffer(16000, 1, 2, 50)
	require.NoError(t, Overlay(base, over))
	assert.Equal(t, []int{150, 150, 100, 100}, base.Data)
}

func TestOverlayMismatchErrors(t *testing.T) {
	base := constBuffer(16000, 1, 4, 0)
	require.Error(t, Overlay(base, constBuffer(22050, 1, 4, 0)))
	require.Error(t, Overlay(base, constBuffer(16000, 2, 4, 0)))
}
