package main

import (
	"fmt"
	"os"

	"github.com/fablecast/fablecast/pkg/audioio"
)

type RecordCmd struct {
	Output string `short:"o" default:"voice.wav" help:"Destination wav file for the voice clip."`
}

// Run captures a reference voice clip, e.g. for the coqui backend's
// voice cloning. Recording runs until the user presses Enter.
func (c *RecordCmd) Run() error {
	mic, err := audioio.NewMicrophone()
	if err != nil {
		return err
	}
	if err := mic.StartRecording(); err != nil {
		return err
	}

	fmt.Println("Recording... press Enter to stop.")
	_, _ = fmt.Scanln()

	wavBytes, err := mic.StopRecording()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, wavBytes, 0644); err != nil {
		return err
	}

	fmt.Printf("Recorded voice clip %q (%d bytes)\n", c.Output, len(wavBytes))
	return nil
}
