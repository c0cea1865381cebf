package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/fablecast/fablecast/internal/utils"
)

var cli struct {
	LogLevel string `help:"Logging level (trace|debug|info|warn|error)." default:"info" env:"FABLECAST_LOG_LEVEL"`

	Narrate NarrateCmd `cmd:"" default:"withargs" help:"Generate a fairy tale and narrate it into a wav file."`
	Record  RecordCmd  `cmd:"" help:"Record a reference voice clip from the microphone."`
	Probe   ProbeCmd   `cmd:"" help:"Print container info for an audio file."`
}

func main() {
	// Load .env before kong so env-tagged flags see its values.
	dotenvErr := godotenv.Load()

	ktx := kong.Parse(&cli,
		kong.Name("fablecast"),
		kong.Description("Turns a topic into a narrated fairy tale with background music."),
		kong.UsageOnError(),
	)
	utils.SetupZerolog(cli.LogLevel)
	if dotenvErr != nil {
		log.Debug().Msg("no .env file found, relying on the environment")
	}

	err := ktx.Run()
	ktx.FatalIfErrorf(err)
}
