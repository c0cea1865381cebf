package audio_utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
)

// Decode picks the decoder by declared format ("wav", "mp3", "flac").
func Decode(format string, rawAudioBytes []byte) (*audio.IntBuffer, error) {
	switch format {
	case "wav":
		return DecodeFromWav(rawAudioBytes)
	case "mp3":
		return DecodeFromMp3(rawAudioBytes)
	case "flac":
		return DecodeFromFlac(rawAudioBytes)
	default:
		return nil, fmt.Errorf("unknown audio format %q", format)
	}
}

// DecodeFromMp3 decodes an entire mp3 into an int buffer.
// go-mp3 always outputs S16 stereo at the decoder's sample rate.
func DecodeFromMp3(mp3Bytes []byte) (*audio.IntBuffer, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(mp3Bytes))
	if err != nil {
		return nil, errors.Wrap(err, "mp3.NewDecoder failed")
	}
	pcmBytes, err := io.ReadAll(decoder)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read decoded mp3 stream")
	}
	return &audio.IntBuffer{
		Data: TwoByteDataToIntSlice(pcmBytes),
		Format: &audio.Format{
			SampleRate:  decoder.SampleRate(),
			NumChannels: 2,
		},
		SourceBitDepth: 16,
	}, nil
}

// DecodeFromFlac decodes an entire flac stream into an int buffer,
// interleaving the per-channel subframes.
func DecodeFromFlac(flacBytes []byte) (*audio.IntBuffer, error) {
	stream, err := flac.Parse(bytes.NewReader(flacBytes))
	if err != nil {
		return nil, errors.Wrap(err, "flac.Parse failed")
	}
	info := stream.Info

	data := make([]int, 0, int(info.NSamples)*int(info.NChannels))
	for {
		frame, parseErr := stream.ParseNext()
		if parseErr == io.EOF {
			break
		}
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, "cannot parse flac frame")
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		numSamples := len(frame.Subframes[0].Samples)
		for i := 0; i < numSamples; i++ {
			for _, subframe := range frame.Subframes {
				data = append(data, int(subframe.Samples[i]))
			}
		}
	}

	return &audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			SampleRate:  int(info.SampleRate),
			NumChannels: int(info.NChannels),
		},
		SourceBitDepth: int(info.BitsPerSample),
	}, nil
}
