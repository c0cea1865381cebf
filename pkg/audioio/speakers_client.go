package audioio

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"
)

type speakers struct {
	otoContext *oto.Context
}

func NewSpeakers(sampleRate int, numChannels int) (OutputDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: numChannels,
		Format:       oto.FormatSignedInt16LE,
	}

	// Remember that you should **not** create more than one context
	log.Info().Msg("setupOtoPlayer - will wait until ready")
	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan // Wait for the audio hardware to be ready (about 200ms empirically)
	log.Info().Msg("setupOtoPlayer - context ready")

	return &speakers{otoContext: otoCtx}, nil
}

// Play plays the entire stream and returns a WaitGroup so the caller
// can block until playback finished.
func (s *speakers) Play(audioOutput io.Reader) (*sync.WaitGroup, error) {
	player := s.otoContext.NewPlayer(audioOutput)
	player.Play()

	done := &sync.WaitGroup{}
	done.Add(1)
	go func() {
		defer done.Done()
		startTime := time.Now()
		for player.IsPlaying() {
			time.Sleep(time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Error().Err(err).Msg("player.Close failed")
		}
		log.Debug().Dur("playback_duration", time.Since(startTime)).Msg("playback done")
	}()
	return done, nil
}
