package audio_utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
)

// AudioInfo is what Probe learned about an encoded audio container.
type AudioInfo struct {
	Format      string
	SampleRate  int
	NumChannels int
	Duration    time.Duration
}

// DetectFormat sniffs the container by magic bytes. Returns "" when the
// data is none of wav, flac or mp3.
func DetectFormat(data []byte) string {
	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("RIFF")):
		return "wav"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("fLaC")):
		return "flac"
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return "mp3"
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return "mp3" // frame sync without a tag header
	default:
		return ""
	}
}

// Probe reports format, sample rate, channel count and duration of an
// encoded audio container. Duration comes from actually decoding the
// headers (and for wav the samples), not from trusting metadata.
func Probe(data []byte) (AudioInfo, error) {
	format := DetectFormat(data)
	switch format {
	case "wav":
		intBuffer, err := DecodeFromWav(data)
		if err != nil {
			return AudioInfo{}, err
		}
		return infoFromFrames(format, intBuffer.Format.SampleRate, intBuffer.Format.NumChannels, NumFrames(intBuffer)), nil
	case "mp3":
		decoder, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			return AudioInfo{}, errors.Wrap(err, "mp3.NewDecoder failed")
		}
		// Length is decoded byte size; go-mp3 output is always S16 stereo.
		numFrames := int(decoder.Length() / 4)
		return infoFromFrames(format, decoder.SampleRate(), 2, numFrames), nil
	case "flac":
		stream, err := flac.Parse(bytes.NewReader(data))
		if err != nil {
			return AudioInfo{}, errors.Wrap(err, "flac.Parse failed")
		}
		info := stream.Info
		return infoFromFrames(format, int(info.SampleRate), int(info.NChannels), int(info.NSamples)), nil
	default:
		return AudioInfo{}, fmt.Errorf("unrecognized audio container (%d bytes)", len(data))
	}
}

func infoFromFrames(format string, sampleRate, numChannels, numFrames int) AudioInfo {
	result := AudioInfo{
		Format:      format,
		SampleRate:  sampleRate,
		NumChannels: numChannels,
	}
	if sampleRate > 0 {
		result.Duration = time.Duration(numFrames) * time.Second / time.Duration(sampleRate)
	}
	return result
}
