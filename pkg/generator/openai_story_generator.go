package generator

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/fablecast/fablecast/pkg/models"
)

// Sampling constants tuned for fairy tales. The penalties keep the
// model from leaning on stock phrases over a 1000-word story.
const (
	defaultChatModel = openai.GPT4
	temperature      = 0.7
	maxTokens        = 2000
	topP             = 1.0
	frequencyPenalty = 0.5
	presencePenalty  = 0.5
)

type openaiStoryGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIStoryGenerator(client *openai.Client, model string) StoryGenerator {
	if model == "" {
		model = defaultChatModel
	}
	return &openaiStoryGenerator{client: client, model: model}
}

func (o *openaiStoryGenerator) Generate(ctx context.Context, prompt models.StoryPrompt) (models.Story, error) {
	languageCode, err := LanguageCode(prompt.Language)
	if err != nil {
		return models.Story{}, err
	}
	systemMessage, userMessage, err := BuildMessages(prompt, languageCode)
	if err != nil {
		return models.Story{}, err
	}

	chatRequest := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature:      temperature,
		MaxTokens:        maxTokens,
		TopP:             topP,
		FrequencyPenalty: frequencyPenalty,
		PresencePenalty:  presencePenalty,
	}
	log.Info().Str("topic", prompt.Topic).Str("model", chatRequest.Model).Float32("temperature", chatRequest.Temperature).Msg("executeChatRequest")

	startTime := time.Now()
	response, err := o.client.CreateChatCompletion(ctx, chatRequest)
	if err != nil {
		return models.Story{}, errors.Wrap(err, "chat completion failed")
	}
	if len(response.Choices) == 0 {
		return models.Story{}, errors.New("chat completion returned no choices")
	}

	text := strings.TrimSpace(response.Choices[0].Message.Content)
	if text == "" {
		return models.Story{}, errors.New("chat completion returned an empty story")
	}
	log.Info().Dur("latency", time.Since(startTime)).Int("story_chars", len(text)).Msg("full story received")

	return models.Story{Text: text, Language: languageCode, Model: o.model}, nil
}
