package audio_utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func dbg(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("sth non-essential failed")
	}
}

// ConvertByteSamplesToWav assumes S16 encoding (or two bytes per value),
// which is what the microphone captures.
func ConvertByteSamplesToWav(byteData []byte, sampleRate uint32, numChannels uint32) (result []byte, err error) {
	inputBuffer := &audio.IntBuffer{
		Data: TwoByteDataToIntSlice(byteData),
		Format: &audio.Format{
			SampleRate:  int(sampleRate),
			NumChannels: int(numChannels),
		},
		SourceBitDepth: 16,
	}
	return EncodeToWav(inputBuffer, 16, 1)
}

// EncodeToWav serializes an int buffer into a wav container.
// audioFormat 1 is plain PCM, which is all the pipeline produces.
func EncodeToWav(inputBuffer *audio.IntBuffer, outputBitDepth int, audioFormat int) (result []byte, err error) {
	if inputBuffer == nil || len(inputBuffer.Data) == 0 {
		err = fmt.Errorf("refusing to encode an empty buffer as wav")
		return
	}

	// wav.NewEncoder needs an io.WriteSeeker to finalize headers,
	// so we stage the output in an in-memory file system.
	fs := afero.NewMemMapFs()
	inMemoryFilename := "in-memory-output.wav"
	inMemoryFile, err := fs.Create(inMemoryFilename)
	dbg(err)
	// We will call Close ourselves.

	iSampleRate := inputBuffer.Format.SampleRate
	iNumChannels := inputBuffer.Format.NumChannels
	wavEncoder := wav.NewEncoder(inMemoryFile, iSampleRate, outputBitDepth, iNumChannels, audioFormat)
	log.Debug().Int("int_data_length", len(inputBuffer.Data)).Int("sample_rate", iSampleRate).Int("source_bit_depth", inputBuffer.SourceBitDepth).Int("output_bit_depth", outputBitDepth).Int("num_channels", iNumChannels).Int("audio_format", audioFormat).Msg("encoding int stream output as a wav")
	if err = wavEncoder.Write(inputBuffer); err != nil {
		err = fmt.Errorf("cannot encode byte output as wav %w", err)
		return
	}

	// Close the wavEncoder to flush any remaining data and finalize the WAV file
	if err = wavEncoder.Close(); err != nil {
		err = fmt.Errorf("cannot finish wav encoding %w", err)
		return
	}

	// We close and re-open the file so we can properly read-all of its contents.
	dbg(inMemoryFile.Close())
	inMemoryFileReopen, err := fs.Open(inMemoryFilename)
	dbg(err)
	result, err = io.ReadAll(inMemoryFileReopen)
	dbg(err)
	if err == nil && len(result) == 0 {
		err = fmt.Errorf("wav output is empty when input was not")
		return
	}
	return
}

// DecodeFromWav parses a wav container into an int buffer.
func DecodeFromWav(wavBytes []byte) (*audio.IntBuffer, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavBytes))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file")
	}
	intBuffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("cannot read wav pcm data %w", err)
	}
	if intBuffer.SourceBitDepth == 0 {
		intBuffer.SourceBitDepth = int(decoder.BitDepth)
	}
	return intBuffer, nil
}

// TwoByteDataToIntSlice reads little-endian SIGNED 16-bit samples.
func TwoByteDataToIntSlice(audioData []byte) []int {
	intData := make([]int, len(audioData)/2)
	for i := 0; i+1 < len(audioData); i += 2 {
		value := int(int16(binary.LittleEndian.Uint16(audioData[i : i+2])))
		intData[i/2] = value
	}
	return intData
}

// IntSliceToTwoByteData is the inverse, for feeding raw S16 PCM to a
// playback device.
func IntSliceToTwoByteData(intData []int) []byte {
	byteData := make([]byte, 2*len(intData))
	for i, value := range intData {
		binary.LittleEndian.PutUint16(byteData[2*i:], uint16(int16(clampS16(value))))
	}
	return byteData
}

func clampS16(value int) int {
	if value > 32767 {
		return 32767
	}
	if value < -32768 {
		return -32768
	}
	return value
}
