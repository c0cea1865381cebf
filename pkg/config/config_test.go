package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOpenAIConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FABLECAST_CHAT_MODEL", "gpt-4o")
	t.Setenv("FABLECAST_TTS_VOICE", "fable")

	cfg, err := GetOpenAIConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, "fable", cfg.TTSVoice)
	assert.Empty(t, cfg.TTSModel)
}

func TestGetOpenAIConfigMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := GetOpenAIConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestGetElevenLabsConfigDefaults(t *testing.T) {
	t.Setenv("ELEVEN_LABS_API_KEY", "xi-test")
	t.Setenv("ELEVEN_LABS_STABILITY", "")
	t.Setenv("ELEVEN_LABS_SIMILARITY_BOOST", "")

	cfg, err := GetElevenLabsConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Stability, 0.001)
	assert.InDelta(t, 0.75, cfg.SimilarityBoost, 0.001)
}

func TestGetElevenLabsConfigBadNumber(t *testing.T) {
	t.Setenv("ELEVEN_LABS_API_KEY", "xi-test")
	t.Setenv("ELEVEN_LABS_STABILITY", "very stable")

	_, err := GetElevenLabsConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ELEVEN_LABS_STABILITY")
}

func TestGetCoquiConfig(t *testing.T) {
	t.Setenv("COQUI_URL", "http://localhost:5002")
	t.Setenv("COQUI_SPEAKER_WAV", "narrator.wav")

	cfg, err := GetCoquiConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5002", cfg.URL)
	assert.Equal(t, "narrator.wav", cfg.SpeakerWav)

	t.Setenv("COQUI_URL", "")
	_, err = GetCoquiConfig()
	require.Error(t, err)
}
