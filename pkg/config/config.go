package config

import (
	"fmt"
	"os"
	"strconv"
)

// Each backend gets its own config struct so that only the selected
// backend's variables have to be set. Load a .env first (main does)
// and these read straight from the environment.

type OpenAIConfig struct {
	APIKey    string
	ChatModel string
	TTSModel  string
	TTSVoice  string
	APIBase   string
}

func GetOpenAIConfig() (*OpenAIConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	return &OpenAIConfig{
		APIKey:    apiKey,
		ChatModel: os.Getenv("FABLECAST_CHAT_MODEL"),
		TTSModel:  os.Getenv("FABLECAST_TTS_MODEL"),
		TTSVoice:  os.Getenv("FABLECAST_TTS_VOICE"),
		APIBase:   os.Getenv("OPENAI_API_BASE"),
	}, nil
}

type ElevenLabsConfig struct {
	APIKey          string
	VoiceID         string
	ModelID         string
	Stability       float32
	SimilarityBoost float32
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiKey := os.Getenv("ELEVEN_LABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_KEY must be set")
	}

	stability, err := envFloat32("ELEVEN_LABS_STABILITY", 0.5)
	if err != nil {
		return nil, err
	}
	similarityBoost, err := envFloat32("ELEVEN_LABS_SIMILARITY_BOOST", 0.75)
	if err != nil {
		return nil, err
	}

	return &ElevenLabsConfig{
		APIKey:          apiKey,
		VoiceID:         os.Getenv("ELEVEN_LABS_VOICE_ID"),
		ModelID:         os.Getenv("ELEVEN_LABS_MODEL_ID"),
		Stability:       stability,
		SimilarityBoost: similarityBoost,
	}, nil
}

type CoquiConfig struct {
	URL        string
	SpeakerWav string
}

func GetCoquiConfig() (*CoquiConfig, error) {
	serverURL := os.Getenv("COQUI_URL")
	if serverURL == "" {
		return nil, fmt.Errorf("COQUI_URL must be set")
	}

	return &CoquiConfig{
		URL:        serverURL,
		SpeakerWav: os.Getenv("COQUI_SPEAKER_WAV"),
	}, nil
}

func envFloat32(name string, fallback float32) (float32, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return float32(parsed), nil
}
