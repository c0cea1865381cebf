package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablecast/fablecast/pkg/models"
)

func TestLanguageCode(t *testing.T) {
	code, err := LanguageCode("Russian")
	require.NoError(t, err)
	assert.Equal(t, "ru", code)

	code, err = LanguageCode("")
	require.NoError(t, err)
	assert.Equal(t, "en", code)

	_, err = LanguageCode("Klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Klingon")
}

func TestBuildMessagesIncludesAllElements(t *testing.T) {
	prompt := models.StoryPrompt{
		Topic:     "a lost compass",
		Character: "a brave little fox",
		Theme:     "forest",
		MaxWords:  300,
	}

	system, user, err := BuildMessages(prompt, "de")
	require.NoError(t, err)

	assert.Contains(t, system, "original fairy tales")
	assert.Contains(t, system, "around 300 words")
	assert.Contains(t, system, "in de language")
	assert.NotContains(t, system, "previous story")

	assert.Contains(t, user, "Initial Scenario: a lost compass")
	assert.Contains(t, user, "Main Character: a brave little fox")
	assert.Contains(t, user, "Themes: forest")
	assert.Contains(t, user, "ending conclusively")
}

func TestBuildMessagesOmitsEmptyElements(t *testing.T) {
	_, user, err := BuildMessages(models.StoryPrompt{Topic: "a lost compass"}, "en")
	require.NoError(t, err)

	assert.NotContains(t, user, "Main Character")
	assert.NotContains(t, user, "Themes")
	assert.Contains(t, user, "around 1000 words")
}

func TestBuildMessagesFeedback(t *testing.T) {
	system, _, err := BuildMessages(models.StoryPrompt{Topic: "t", Feedback: models.FeedbackLike}, "en")
	require.NoError(t, err)
	assert.Contains(t, system, "liked your previous story")

	system, _, err = BuildMessages(models.StoryPrompt{Topic: "t", Feedback: models.FeedbackDislike}, "en")
	require.NoError(t, err)
	assert.Contains(t, system, "disliked your previous story")

	_, _, err = BuildMessages(models.StoryPrompt{Topic: "t", Feedback: "meh"}, "en")
	require.Error(t, err)
}

func TestSupportedLanguagesSorted(t *testing.T) {
	assert.Equal(t, []string{"English", "French", "German", "Russian", "Spanish"}, SupportedLanguages())
}
