// Package logx configures the global zerolog logger for the CLIs.
package logx

import (
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at a colorized console writer on stderr.
// verbose lowers the level to debug.
func Setup(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
