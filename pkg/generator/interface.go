package generator

import (
	"context"

	"github.com/fablecast/fablecast/pkg/models"
)

// StoryGenerator wraps a pretrained language model that turns a prompt
// into a complete fairy tale. Implementations must return a non-empty
// story or an error, never both empty.
type StoryGenerator interface {
	Generate(ctx context.Context, prompt models.StoryPrompt) (models.Story, error)
}
