package cmd

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// newLogger builds the process logger. Chain and API chatter stays below the
// interactive output; the default level is warn so the menu stays readable.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}
