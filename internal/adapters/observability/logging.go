package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return newLogger(env, os.Stdout)
}

// NewCLILogger is the terminal client's logger: console output on stderr so
// it never interleaves with rendered results, warnings only unless debug.
func NewCLILogger(debug bool) zerolog.Logger {
	lvl := zerolog.WarnLevel
	if debug {
		lvl = zerolog.DebugLevel
	}
	return newLogger("dev", os.Stderr).Level(lvl)
}

func newLogger(env string, out io.Writer) zerolog.Logger {
	if env == "dev" || env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}
