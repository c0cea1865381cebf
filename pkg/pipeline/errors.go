package pipeline

import "errors"

// Failure taxonomy. Every run aborts on the first failed stage; match
// with errors.Is to learn which stage gave up.
var (
	ErrInput      = errors.New("invalid input")
	ErrGeneration = errors.New("story generation failed")
	ErrSynthesis  = errors.New("speech synthesis failed")
	ErrIO         = errors.New("cannot persist audio output")
)
