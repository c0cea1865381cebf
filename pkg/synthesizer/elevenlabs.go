package synthesizer

import (
	"context"
	"time"

	"github.com/haguro/elevenlabs-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/fablecast/fablecast/pkg/models"
)

const (
	// DefaultElevenLabsVoiceID is "Charlotte", a narrator-ish voice.
	DefaultElevenLabsVoiceID = "XB0fDUnXU5powFXDhCwa"
	// DefaultElevenLabsModelID handles all the story languages we support.
	DefaultElevenLabsModelID = "eleven_multilingual_v2"
)

type elevenLabsTTS struct {
	apiKey          string
	voiceID         string
	modelID         string
	stability       float32
	similarityBoost float32
	timeout         time.Duration
}

func NewElevenLabsTTS(apiKey, voiceID, modelID string, stability, similarityBoost float32) Synthesizer {
	if voiceID == "" {
		voiceID = DefaultElevenLabsVoiceID
	}
	if modelID == "" {
		modelID = DefaultElevenLabsModelID
	}
	return &elevenLabsTTS{
		apiKey:          apiKey,
		voiceID:         voiceID,
		modelID:         modelID,
		stability:       stability,
		similarityBoost: similarityBoost,
		timeout:         2 * time.Minute,
	}
}

func (e *elevenLabsTTS) CreateSpeech(ctx context.Context, text string, speed float64) (models.AudioData, error) {
	if speed != 1.0 {
		log.Debug().Float64("speed", speed).Msg("elevenlabs backend ignores narration speed")
	}

	client := elevenlabs.NewClient(ctx, e.apiKey, e.timeout)
	ttsReq := elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: e.modelID,
		VoiceSettings: &elevenlabs.VoiceSettings{
			Stability:       e.stability,
			SimilarityBoost: e.similarityBoost,
		},
	}

	startTime := time.Now()
	rawAudioBytes, err := client.TextToSpeech(e.voiceID, ttsReq)
	if err != nil {
		return models.AudioData{}, errors.Wrapf(err, "elevenlabs text-to-speech failed for voice %s", e.voiceID)
	}
	log.Debug().Dur("request_time", time.Since(startTime)).Int("response_byte_size", len(rawAudioBytes)).Msg("elevenlabs speech received")

	return models.AudioData{
		ByteData: rawAudioBytes,
		Format:   "mp3",
		Text:     text,
	}, nil
}
