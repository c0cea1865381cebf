package soundtrack

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fablecast/fablecast/pkg/audio_utils"
)

// themeTracks maps theme keywords to track files inside the library
// root. Order matters: the first keyword contained in the theme wins.
var themeTracks = []struct {
	keyword string
	file    string
}{
	{"space", "space.wav"},
	{"fantastic", "fantasy.wav"},
	{"medieval", "medieval.wav"},
	{"horror", "horror.wav"},
	{"sea", "sea.wav"},
	{"sci-fi", "sci-fi.wav"},
	{"forest", "day_forest.wav"},
}

// defaultTrack plays when no keyword matches the theme.
const defaultTrack = "fairy_tail_slow.wav"

// Library is a directory of background music tracks.
type Library struct {
	fs   afero.Fs
	root string
}

func NewLibrary(fs afero.Fs, root string) *Library {
	return &Library{fs: fs, root: root}
}

// Select resolves a theme to a track path, falling back to the default
// track. Returns an error when the chosen file does not exist on disk,
// so callers can skip mixing with a warning instead of failing the run.
func (l *Library) Select(theme string) (string, error) {
	name := defaultTrack
	themeLower := strings.ToLower(theme)
	for _, candidate := range themeTracks {
		if strings.Contains(themeLower, candidate.keyword) {
			name = candidate.file
			break
		}
	}

	path := filepath.Join(l.root, name)
	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot stat background track %s", path)
	}
	if !exists {
		return "", fmt.Errorf("background track %s does not exist", path)
	}
	log.Debug().Str("theme", theme).Str("track", path).Msg("background track selected")
	return path, nil
}

// Load reads and decodes a track into an int buffer.
func (l *Library) Load(path string) (*audio.IntBuffer, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read background track %s", path)
	}
	format := audio_utils.DetectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("background track %s is not a recognized audio container", path)
	}
	return audio_utils.Decode(format, data)
}
