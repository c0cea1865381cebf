package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fablecast/fablecast/pkg/models"
)

// DefaultMaxWords keeps stories short enough to narrate in one sitting.
const DefaultMaxWords = 1000

// languageCodes maps user-facing language names to the ISO 639-1 codes
// the model and the speech backends understand.
var languageCodes = map[string]string{
	"English": "en",
	"Russian": "ru",
	"French":  "fr",
	"Spanish": "es",
	"German":  "de",
}

// LanguageCode resolves a language name to its code. An empty name
// defaults to English.
func LanguageCode(name string) (string, error) {
	if name == "" {
		return "en", nil
	}
	if code, ok := languageCodes[name]; ok {
		return code, nil
	}
	return "", fmt.Errorf("unsupported language %q (supported: %s)", name, strings.Join(SupportedLanguages(), ", "))
}

func SupportedLanguages() []string {
	names := make([]string, 0, len(languageCodes))
	for name := range languageCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildMessages renders the system and user messages for a story prompt.
// The wording is deliberately prescriptive; without the "do not end
// abruptly" instruction the model tends to cut stories off mid-scene
// when it approaches the token limit.
func BuildMessages(prompt models.StoryPrompt, languageCode string) (system string, user string, err error) {
	var feedbackNote string
	switch prompt.Feedback {
	case "":
		// First story of a session, nothing to fold in.
	case models.FeedbackLike:
		feedbackNote = "The user liked your previous story. Maintain or enhance that appealing style/tone.\n"
	case models.FeedbackDislike:
		feedbackNote = "The user disliked your previous story. Try a different approach or style.\n"
	default:
		return "", "", fmt.Errorf("unknown feedback %q, want %q or %q", prompt.Feedback, models.FeedbackLike, models.FeedbackDislike)
	}

	maxWords := prompt.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	system = fmt.Sprintf(
		"You are a creative AI specialized in crafting original fairy tales. "+
			"Write a complete story with a clear beginning, middle, and end. "+
			"It should be relatively small, around %d words. "+
			"Use rich detail, do not end abruptly, and conclude with a final resolution. "+
			"Write the story in %s language.\n%s",
		maxWords, languageCode, feedbackNote,
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Initial Scenario: %s\n", strings.TrimSpace(prompt.Topic))
	if prompt.Character != "" {
		fmt.Fprintf(&b, "Main Character: %s\n", prompt.Character)
	}
	if prompt.Theme != "" {
		fmt.Fprintf(&b, "Themes: %s\n", prompt.Theme)
	}
	fmt.Fprintf(&b, "\nPlease write the fairy tale using these elements, up to around %d words, ending conclusively.", maxWords)
	user = b.String()
	return system, user, nil
}
