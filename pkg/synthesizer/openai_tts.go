package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fablecast/fablecast/pkg/models"
)

var httpClient = &http.Client{}

const DefaultOpenAIAPIBase = "https://api.openai.com/v1"

type openAITTS struct {
	apiKey  string
	apiBase string
	model   string
	voice   string
}

// NewOpenAITTS returns a synthesizer backed by the OpenAI audio/speech
// endpoint. Empty apiBase, model and voice fall back to the production
// API, tts-1 and echo.
func NewOpenAITTS(apiKey, apiBase, model, voice string) Synthesizer {
	if apiBase == "" {
		apiBase = DefaultOpenAIAPIBase
	}
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "echo"
	}
	return &openAITTS{
		apiKey:  apiKey,
		apiBase: strings.TrimSuffix(apiBase, "/"),
		model:   model,
		voice:   voice,
	}
}

// TODO(devx, P1): Replace with the openai-go one after implemented
// https://github.com/sashabaranov/go-openai/pull/528/files?diff=unified&w=0
func (o *openAITTS) CreateSpeech(ctx context.Context, text string, speed float64) (models.AudioData, error) {
	log.Debug().Int("input_chars", len(text)).Float64("speed", speed).Msg("sendTTSRequest start")

	payload := TTSPayload{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: "mp3",
		Speed:          speed,
	}
	reqStr, _ := json.Marshal(payload)
	rawAudioBytes, err := o.sendRequest(ctx, "POST", "audio/speech", string(reqStr))
	if err != nil {
		return models.AudioData{}, fmt.Errorf("could not do audio/speech cause %w", err)
	}
	return models.AudioData{
		ByteData: rawAudioBytes,
		Format:   payload.ResponseFormat,
		Text:     text,
	}, nil
}

// TTSPayload for sendTTSRequest
type TTSPayload struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

// This is to by-pass not-yet-implemented APIs in go-openai
func (o *openAITTS) sendRequest(ctx context.Context, method string, endpoint string, requestStr string) (result []byte, err error) {
	requestStart := time.Now()
	reqBody := strings.NewReader(requestStr)

	req, err := http.NewRequestWithContext(ctx, method, o.apiBase+"/"+endpoint, reqBody)
	if err != nil {
		return
	}
	req.Header.Add("Authorization", "Bearer "+o.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return
	}
	defer func() { resp.Body.Close() }()

	log.Debug().Dur("request_time", time.Since(requestStart)).Str("method", method).Str("endpoint", endpoint).Int("status_code", resp.StatusCode).Msg("request done")

	if resp.StatusCode != http.StatusOK {
		errMsg, _ := io.ReadAll(resp.Body)
		err = fmt.Errorf("received non-200 status %d from %s: %s", resp.StatusCode, endpoint, errMsg)
		log.Debug().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("request to openai failed")
		return
	}

	readStart := time.Now()
	result, err = io.ReadAll(resp.Body)
	log.Debug().Dur("response_body_read_time", time.Since(readStart)).Int("response_byte_size", len(result)).Str("endpoint", endpoint).Msg("request body read done")
	if err != nil {
		err = fmt.Errorf("could not read response %w", err)
		return
	}
	return
}
