package synthesizer

import (
	"context"

	"github.com/fablecast/fablecast/pkg/models"
)

// Synthesizer converts narration text into encoded audio. Empty text is
// the caller's problem; backends assume they receive a real story.
type Synthesizer interface {
	CreateSpeech(ctx context.Context, text string, speed float64) (audioOutput models.AudioData, err error)
}
