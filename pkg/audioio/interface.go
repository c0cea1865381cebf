package audioio

import (
	"io"
	"sync"
)

// InputDevice records from a microphone. StopRecording returns the
// whole capture as a wav container.
type InputDevice interface {
	StartRecording() error
	StopRecording() ([]byte, error)
}

// OutputDevice plays raw S16 PCM matching the rate and channel count it
// was created with.
type OutputDevice interface {
	Play(audioOutput io.Reader) (*sync.WaitGroup, error)
}
