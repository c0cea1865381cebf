package main

import (
	"fmt"
	"os"

	"github.com/fablecast/fablecast/pkg/audio_utils"
)

type ProbeCmd struct {
	File string `arg:"" type:"existingfile" help:"Audio file to inspect (wav, mp3 or flac)."`
}

func (c *ProbeCmd) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	info, err := audio_utils.Probe(data)
	if err != nil {
		return err
	}

	fmt.Printf("format=%s sample_rate=%d channels=%d duration=%s\n", info.Format, info.SampleRate, info.NumChannels, info.Duration)
	return nil
}
