package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/afero"

	"github.com/fablecast/fablecast/pkg/audio_utils"
	"github.com/fablecast/fablecast/pkg/audioio"
	"github.com/fablecast/fablecast/pkg/config"
	"github.com/fablecast/fablecast/pkg/generator"
	"github.com/fablecast/fablecast/pkg/models"
	"github.com/fablecast/fablecast/pkg/pipeline"
	"github.com/fablecast/fablecast/pkg/soundtrack"
	"github.com/fablecast/fablecast/pkg/synthesizer"
)

type NarrateCmd struct {
	Topic []string `arg:"" help:"Topic / initial scenario of the tale."`

	Output    string  `short:"o" default:"fairy_tale.wav" help:"Destination wav file."`
	Character string  `help:"Main character of the tale."`
	Theme     string  `help:"Theme; also picks the background music (space, fantastic, medieval, horror, sea, sci-fi, forest)."`
	Language  string  `default:"English" help:"Story language (English, Russian, French, Spanish, German)."`
	Feedback  string  `enum:",like,dislike" default:"" help:"Reaction to the previous story, folded into the next one."`
	MaxWords  int     `default:"1000" help:"Approximate story length in words."`
	Backend   string  `short:"b" enum:"openai,elevenlabs,coqui" default:"openai" help:"Speech synthesis backend."`
	Voice     string  `help:"Voice override (OpenAI voice name or ElevenLabs voice ID)."`
	Speed     float64 `default:"1.0" help:"Narration speed (openai backend only)."`
	MusicDir  string  `help:"Directory with background music tracks."`
	NoMusic   bool    `help:"Disable background music even when --music-dir is set."`
	Play      bool    `help:"Play the narration after writing the file."`
}

func (c *NarrateCmd) Run() error {
	openAIConfig, err := config.GetOpenAIConfig()
	if err != nil {
		return err
	}

	storyGenerator := generator.NewOpenAIStoryGenerator(newOpenAIClient(openAIConfig), openAIConfig.ChatModel)

	speechSynthesizer, err := c.buildSynthesizer(openAIConfig)
	if err != nil {
		return err
	}

	var library *soundtrack.Library
	if c.MusicDir != "" && !c.NoMusic {
		library = soundtrack.NewLibrary(afero.NewOsFs(), c.MusicDir)
	}

	narrator := pipeline.NewNarrator(storyGenerator, speechSynthesizer, library, afero.NewOsFs())
	result, err := narrator.Narrate(context.Background(), pipeline.Request{
		Prompt: models.StoryPrompt{
			Topic:     strings.Join(c.Topic, " "),
			Character: c.Character,
			Theme:     c.Theme,
			Language:  c.Language,
			Feedback:  c.Feedback,
			MaxWords:  c.MaxWords,
		},
		OutputPath: c.Output,
		Speed:      c.Speed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Generated file %q (%.1fs, %d Hz, %d channel(s))\n", result.OutputPath, result.Duration.Seconds(), result.SampleRate, result.NumChannels)

	if c.Play {
		// The file is the contract; a broken playback device only warns.
		if playErr := playFile(result.OutputPath); playErr != nil {
			log.Warn().Err(playErr).Msg("cannot play the narration")
		}
	}
	return nil
}

func newOpenAIClient(cfg *config.OpenAIConfig) *openai.Client {
	if cfg.APIBase != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.APIBase
		return openai.NewClientWithConfig(clientConfig)
	}
	return openai.NewClient(cfg.APIKey)
}

func (c *NarrateCmd) buildSynthesizer(openAIConfig *config.OpenAIConfig) (synthesizer.Synthesizer, error) {
	switch c.Backend {
	case "openai":
		voice := c.Voice
		if voice == "" {
			voice = openAIConfig.TTSVoice
		}
		return synthesizer.NewOpenAITTS(openAIConfig.APIKey, openAIConfig.APIBase, openAIConfig.TTSModel, voice), nil
	case "elevenlabs":
		elevenLabsConfig, err := config.GetElevenLabsConfig()
		if err != nil {
			return nil, err
		}
		voiceID := c.Voice
		if voiceID == "" {
			voiceID = elevenLabsConfig.VoiceID
		}
		return synthesizer.NewElevenLabsTTS(elevenLabsConfig.APIKey, voiceID, elevenLabsConfig.ModelID, elevenLabsConfig.Stability, elevenLabsConfig.SimilarityBoost), nil
	case "coqui":
		coquiConfig, err := config.GetCoquiConfig()
		if err != nil {
			return nil, err
		}
		languageID, err := generator.LanguageCode(c.Language)
		if err != nil {
			return nil, err
		}
		return synthesizer.NewCoquiTTS(coquiConfig.URL, languageID, coquiConfig.SpeakerWav), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func playFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	intBuffer, err := audio_utils.DecodeFromWav(data)
	if err != nil {
		return err
	}
	speakers, err := audioio.NewSpeakers(intBuffer.Format.SampleRate, intBuffer.Format.NumChannels)
	if err != nil {
		return err
	}

	waitUntilDone, err := speakers.Play(bytes.NewReader(audio_utils.IntSliceToTwoByteData(intBuffer.Data)))
	if err != nil {
		return err
	}
	waitUntilDone.Wait()
	return nil
}
