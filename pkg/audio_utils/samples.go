package audio_utils

import (
	"fmt"
	"math"
	"time"

	"github.com/go-audio/audio"
)

// Sample operations used by the soundtrack mixer. All of them assume
// interleaved 16-bit samples, which is what every decoder here emits.

// NumFrames is the per-channel sample count.
func NumFrames(buf *audio.IntBuffer) int {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels == 0 {
		return 0
	}
	return len(buf.Data) / buf.Format.NumChannels
}

// DownmixToMono averages all channels into one.
func DownmixToMono(buf *audio.IntBuffer) *audio.IntBuffer {
	numChannels := buf.Format.NumChannels
	if numChannels <= 1 {
		return buf
	}
	numFrames := NumFrames(buf)
	data := make([]int, numFrames)
	for frame := 0; frame < numFrames; frame++ {
		sum := 0
		for ch := 0; ch < numChannels; ch++ {
			sum += buf.Data[frame*numChannels+ch]
		}
		data[frame] = sum / numChannels
	}
	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: buf.Format.SampleRate, NumChannels: 1},
		SourceBitDepth: buf.SourceBitDepth,
	}
}

// MatchChannels converts buf to the requested channel count, either by
// downmixing to mono first or by duplicating the mono channel.
func MatchChannels(buf *audio.IntBuffer, numChannels int) *audio.IntBuffer {
	if buf.Format.NumChannels == numChannels {
		return buf
	}
	mono := DownmixToMono(buf)
	if numChannels == 1 {
		return mono
	}
	data := make([]int, len(mono.Data)*numChannels)
	for frame, value := range mono.Data {
		for ch := 0; ch < numChannels; ch++ {
			data[frame*numChannels+ch] = value
		}
	}
	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: buf.Format.SampleRate, NumChannels: numChannels},
		SourceBitDepth: buf.SourceBitDepth,
	}
}

// Resample converts buf to targetRate with nearest-sample picking.
// Good enough for background music; narration is never resampled.
func Resample(buf *audio.IntBuffer, targetRate int) *audio.IntBuffer {
	sourceRate := buf.Format.SampleRate
	if sourceRate == targetRate || sourceRate == 0 {
		return buf
	}
	numChannels := buf.Format.NumChannels
	sourceFrames := NumFrames(buf)
	targetFrames := int(int64(sourceFrames) * int64(targetRate) / int64(sourceRate))

	data := make([]int, targetFrames*numChannels)
	for frame := 0; frame < targetFrames; frame++ {
		sourceFrame := int(int64(frame) * int64(sourceRate) / int64(targetRate))
		if sourceFrame >= sourceFrames {
			sourceFrame = sourceFrames - 1
		}
		for ch := 0; ch < numChannels; ch++ {
			data[frame*numChannels+ch] = buf.Data[sourceFrame*numChannels+ch]
		}
	}
	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: targetRate, NumChannels: numChannels},
		SourceBitDepth: buf.SourceBitDepth,
	}
}

// LoopToLength repeats buf until it holds exactly numFrames frames,
// trimming the final repetition.
func LoopToLength(buf *audio.IntBuffer, numFrames int) *audio.IntBuffer {
	numChannels := buf.Format.NumChannels
	if len(buf.Data) == 0 || numFrames <= 0 {
		return &audio.IntBuffer{
			Data:           []int{},
			Format:         &audio.Format{SampleRate: buf.Format.SampleRate, NumChannels: numChannels},
			SourceBitDepth: buf.SourceBitDepth,
		}
	}
	wanted := numFrames * numChannels
	data := make([]int, 0, wanted)
	for len(data) < wanted {
		remaining := wanted - len(data)
		if remaining >= len(buf.Data) {
			data = append(data, buf.Data...)
		} else {
			data = append(data, buf.Data[:remaining]...)
		}
	}
	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: buf.Format.SampleRate, NumChannels: numChannels},
		SourceBitDepth: buf.SourceBitDepth,
	}
}

// ApplyGain scales samples by db decibels in place. Negative attenuates.
func ApplyGain(buf *audio.IntBuffer, db float64) {
	factor := math.Pow(10, db/20)
	for i, value := range buf.Data {
		buf.Data[i] = clampS16(int(math.Round(float64(value) * factor)))
	}
}

// FadeOut applies a linear fade over the final dur of the buffer in place.
func FadeOut(buf *audio.IntBuffer, dur time.Duration) {
	numChannels := buf.Format.NumChannels
	numFrames := NumFrames(buf)
	fadeFrames := int(int64(buf.Format.SampleRate) * int64(dur) / int64(time.Second))
	if fadeFrames > numFrames {
		fadeFrames = numFrames
	}
	if fadeFrames <= 0 {
		return
	}
	start := numFrames - fadeFrames
	for frame := start; frame < numFrames; frame++ {
		factor := float64(numFrames-frame) / float64(fadeFrames)
		for ch := 0; ch < numChannels; ch++ {
			i := frame*numChannels + ch
			buf.Data[i] = int(math.Round(float64(buf.Data[i]) * factor))
		}
	}
}

// Overlay adds over onto base in place, saturating at 16-bit bounds.
// Both buffers must share sample rate and channel count; over may be
// shorter than base.
func Overlay(base, over *audio.IntBuffer) error {
	if base.Format.SampleRate != over.Format.SampleRate {
		return fmt.Errorf("overlay sample rate mismatch: %d vs %d", base.Format.SampleRate, over.Format.SampleRate)
	}
	if base.Format.NumChannels != over.Format.NumChannels {
		return fmt.Errorf("overlay channel count mismatch: %d vs %d", base.Format.NumChannels, over.Format.NumChannels)
	}
	n := len(base.Data)
	if len(over.Data) < n {
		n = len(over.Data)
	}
	for i := 0; i < n; i++ {
		base.Data[i] = clampS16(base.Data[i] + over.Data[i])
	}
	return nil
}
