package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger described by the logging section.
// Output goes to w, which must not be the MCP protocol stream.
func (c *Config) NewLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if c.Logging.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func parseLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
