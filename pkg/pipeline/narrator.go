package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fablecast/fablecast/pkg/audio_utils"
	"github.com/fablecast/fablecast/pkg/generator"
	"github.com/fablecast/fablecast/pkg/models"
	"github.com/fablecast/fablecast/pkg/soundtrack"
	"github.com/fablecast/fablecast/pkg/synthesizer"
)

// Request describes one narration run.
type Request struct {
	Prompt     models.StoryPrompt
	OutputPath string
	Speed      float64 // narration speed for backends that support it, 1.0 when zero
}

// Result reports what a successful run produced. The audio facts come
// from probing the bytes actually written, not from backend claims.
type Result struct {
	OutputPath   string
	StoryText    string
	BytesWritten int
	Duration     time.Duration
	SampleRate   int
	NumChannels  int
}

// Narrator sequences story generation, speech synthesis, optional
// soundtrack mixing and the final file write. Stages run strictly one
// after another; the first failure aborts the run and leaves nothing
// on disk.
type Narrator struct {
	generator   generator.StoryGenerator
	synthesizer synthesizer.Synthesizer
	library     *soundtrack.Library // nil disables background music
	mixOpts     soundtrack.MixOptions
	fs          afero.Fs
}

func NewNarrator(storyGenerator generator.StoryGenerator, speechSynthesizer synthesizer.Synthesizer, library *soundtrack.Library, fs afero.Fs) *Narrator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Narrator{
		generator:   storyGenerator,
		synthesizer: speechSynthesizer,
		library:     library,
		mixOpts:     soundtrack.DefaultMixOptions(),
		fs:          fs,
	}
}

func (n *Narrator) Narrate(ctx context.Context, request Request) (*Result, error) {
	if request.Prompt.Empty() {
		return nil, fmt.Errorf("%w: topic must not be empty", ErrInput)
	}
	if strings.TrimSpace(request.OutputPath) == "" {
		return nil, fmt.Errorf("%w: output path must not be empty", ErrInput)
	}
	speed := request.Speed
	if speed == 0 {
		speed = 1.0
	}

	story, err := n.generator.Generate(ctx, request.Prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGeneration, err)
	}
	storyText := strings.TrimSpace(story.Text)
	if storyText == "" {
		return nil, fmt.Errorf("%w: generator returned an empty story", ErrGeneration)
	}
	log.Info().Int("story_chars", len(storyText)).Str("language", story.Language).Str("model", story.Model).Msg("story generated")

	narration, err := n.synthesize(ctx, storyText, speed)
	if err != nil {
		return nil, err
	}

	mixed := narration
	if n.library != nil {
		mixed, err = n.withSoundtrack(narration, request.Prompt.Theme)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSynthesis, err)
		}
	}

	wavBytes, err := audio_utils.EncodeToWav(mixed, 16, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSynthesis, err)
	}

	info, err := audio_utils.Probe(wavBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: output does not probe as a valid container: %s", ErrSynthesis, err)
	}

	written, err := n.persist(wavBytes, request.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIO, err)
	}

	log.Info().Str("output_path", request.OutputPath).Int("bytes_written", written).Dur("audio_duration", info.Duration).Msg("narration written")
	return &Result{
		OutputPath:   request.OutputPath,
		StoryText:    storyText,
		BytesWritten: written,
		Duration:     info.Duration,
		SampleRate:   info.SampleRate,
		NumChannels:  info.NumChannels,
	}, nil
}

// synthesize runs the speech backend and decodes its output into
// samples the mixer can work with.
func (n *Narrator) synthesize(ctx context.Context, text string, speed float64) (*audio.IntBuffer, error) {
	// The generator guard above makes this unreachable in Narrate, but
	// the synthesizer must never see empty text regardless of caller.
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: narration text must not be empty", ErrInput)
	}

	audioData, err := n.synthesizer.CreateSpeech(ctx, text, speed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSynthesis, err)
	}
	if len(audioData.ByteData) == 0 {
		return nil, fmt.Errorf("%w: synthesizer returned no audio", ErrSynthesis)
	}

	narration, err := audio_utils.Decode(audioData.Format, audioData.ByteData)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode synthesized %s: %s", ErrSynthesis, audioData.Format, err)
	}
	if len(narration.Data) == 0 {
		return nil, fmt.Errorf("%w: synthesizer returned empty audio", ErrSynthesis)
	}
	return narration, nil
}

// withSoundtrack mixes in background music for the theme. A missing
// track only logs a warning; the narration stays unmixed.
func (n *Narrator) withSoundtrack(narration *audio.IntBuffer, theme string) (*audio.IntBuffer, error) {
	trackPath, err := n.library.Select(theme)
	if err != nil {
		log.Warn().Err(err).Str("theme", theme).Msg("no background track, narration stays unmixed")
		return narration, nil
	}
	background, err := n.library.Load(trackPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("track", trackPath).Msg("mixing background music")
	return soundtrack.Mix(narration, background, n.mixOpts)
}

// persist writes the audio next to its destination and renames it into
// place, so a failed run never leaves a partial output file behind.
func (n *Narrator) persist(wavBytes []byte, outputPath string) (int, error) {
	tmpPath := filepath.Join(filepath.Dir(outputPath), fmt.Sprintf(".fablecast-%s.tmp", uuid.NewString()))

	file, err := n.fs.Create(tmpPath)
	if err != nil {
		return 0, err
	}

	written, err := file.Write(wavBytes)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written != len(wavBytes) {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = n.fs.Rename(tmpPath, outputPath)
	}
	if err != nil {
		if removeErr := n.fs.Remove(tmpPath); removeErr != nil {
			log.Debug().Err(removeErr).Str("path", tmpPath).Msg("temp file cleanup failed")
		}
		return 0, err
	}
	return written, nil
}
