// TLDR; Go itself cannot work with Microphone's well
// BUT it can bind with C-libraries which can do this with a bit of black-magic.
package audioio

import (
	"fmt"
	"strings"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog/log"

	"github.com/fablecast/fablecast/pkg/audio_utils"
)

func dbg(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("sth non-essential failed")
	}
}

const myDeviceInputChannels uint32 = 1
const myDeviceSampleRate uint32 = 44100

// microphone captures a mono S16 clip, e.g. a reference voice sample
// for voice cloning. The whole capture is kept in memory.
type microphone struct {
	device       *malgo.Device
	deviceConfig malgo.DeviceConfig
	malgoContext *malgo.AllocatedContext

	recordingStart time.Time
	pSampleData    []byte
}

// NewMicrophone inits the microphone device,
// you should defer StopRecording
func NewMicrophone() (InputDevice, error) {
	log.Info().Msg("malgo init context (miniaudio)")
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Debug().Msg(strings.Replace("malgo devices: "+message, "\n", "", -1))
	})
	if err != nil {
		return nil, fmt.Errorf("cannot init malgo context %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = myDeviceInputChannels
	deviceConfig.SampleRate = myDeviceSampleRate
	deviceConfig.Alsa.NoMMap = 1

	return &microphone{
		deviceConfig: deviceConfig,
		malgoContext: ctx,
		pSampleData:  make([]byte, 0),
	}, nil
}

// StartRecording can only be called once for NewMicrophone
// Mostly from https://github.com/gen2brain/malgo/blob/master/_examples/capture/capture.go
func (m *microphone) StartRecording() error {
	format := m.deviceConfig.Capture.Format
	sizeInBytes := uint32(malgo.SampleSizeInBytes(format))
	if sizeInBytes != 2 {
		log.Fatal().Uint32("size_in_bytes", sizeInBytes).Msgf("Expected 2 bytes for sample %s", format)
	}

	// Some black-magic event-handling which I don't really understand.
	onRecvFrames := func(pSample2, pSample []byte, framecount uint32) {
		// Empirically, len(pSample) is 480, so for sample rate 44100 it's triggered about every 10ms.
		m.pSampleData = append(m.pSampleData, pSample...)
	}

	captureCallbacks := malgo.DeviceCallbacks{
		Data: onRecvFrames,
	}
	device, err := malgo.InitDevice(m.malgoContext.Context, m.deviceConfig, captureCallbacks)
	if err != nil {
		return fmt.Errorf("cannot init malgo device with config %v: %w", m.deviceConfig, err)
	}
	m.device = device

	log.Info().Msg("malgo START recording...")
	m.recordingStart = time.Now()
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("cannot start malgo device %w", err)
	}
	return nil
}

func (m *microphone) StopRecording() ([]byte, error) {
	log.Info().Dur("recording_duration", time.Since(m.recordingStart)).Msg("malgo STOP recording")
	dbg(m.device.Stop())
	dbg(m.malgoContext.Uninit())
	m.malgoContext.Free()

	if len(m.pSampleData) == 0 {
		return nil, fmt.Errorf("no audio was captured")
	}

	// Might NOT work with non-1 number of channels
	return audio_utils.ConvertByteSamplesToWav(m.pSampleData, m.deviceConfig.SampleRate, m.deviceConfig.Capture.Channels)
}
