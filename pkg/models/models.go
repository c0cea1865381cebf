package models

import (
	"strings"
	"time"
)

// Story is the text produced by a story generator. Produced once,
// consumed immediately by the synthesizer, never persisted.
type Story struct {
	Text     string
	Language string // ISO 639-1 code the story was written in, e.g. "en"
	Model    string // backend model that produced it, for logging
}

// StoryPrompt carries the user's inputs for a single fairy tale.
type StoryPrompt struct {
	Topic     string
	Character string
	Theme     string
	Language  string // English name, e.g. "English" or "Russian"
	Feedback  string // "", FeedbackLike or FeedbackDislike — reaction to the previous story
	MaxWords  int
}

const (
	FeedbackLike    = "like"
	FeedbackDislike = "dislike"
)

// Empty reports whether the prompt has no usable topic.
func (p StoryPrompt) Empty() bool {
	return strings.TrimSpace(p.Topic) == ""
}

// AudioData is one synthesized narration. ByteData holds an encoded
// container (Format tells which), not raw samples.
type AudioData struct {
	ByteData    []byte
	Format      string // "wav", "mp3" or "flac"
	SampleRate  int    // 0 when the backend does not report it
	NumChannels int    // 0 when the backend does not report it
	Length      time.Duration
	Text        string // the narration text this audio was synthesized from
}
