package synthesizer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/fablecast/fablecast/pkg/models"
)

// coquiTTS talks to a locally running Coqui TTS server (`tts-server`).
// The server does voice cloning when started with an XTTS model, in
// which case speakerWav names a reference clip on the SERVER's disk.
type coquiTTS struct {
	serverURL  string
	languageID string
	speakerWav string
}

func NewCoquiTTS(serverURL, languageID, speakerWav string) Synthesizer {
	return &coquiTTS{
		serverURL:  strings.TrimSuffix(serverURL, "/"),
		languageID: languageID,
		speakerWav: speakerWav,
	}
}

func (c *coquiTTS) CreateSpeech(ctx context.Context, text string, speed float64) (models.AudioData, error) {
	if speed != 1.0 {
		log.Debug().Float64("speed", speed).Msg("coqui backend ignores narration speed")
	}

	query := url.Values{}
	query.Set("text", text)
	if c.languageID != "" {
		query.Set("language_id", c.languageID)
	}
	if c.speakerWav != "" {
		query.Set("style_wav", c.speakerWav)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/api/tts?"+query.Encode(), nil)
	if err != nil {
		return models.AudioData{}, errors.Wrap(err, "cannot build coqui request")
	}

	requestStart := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return models.AudioData{}, errors.Wrapf(err, "coqui server unreachable at %s", c.serverURL)
	}
	defer func() { resp.Body.Close() }()

	log.Debug().Dur("request_time", time.Since(requestStart)).Int("status_code", resp.StatusCode).Msg("coqui request done")

	if resp.StatusCode != http.StatusOK {
		errMsg, _ := io.ReadAll(resp.Body)
		return models.AudioData{}, fmt.Errorf("received non-200 status %d from coqui server: %s", resp.StatusCode, errMsg)
	}

	rawAudioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AudioData{}, errors.Wrap(err, "could not read coqui response")
	}

	return models.AudioData{
		ByteData: rawAudioBytes,
		Format:   "wav",
		Text:     text,
	}, nil
}
