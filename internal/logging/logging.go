package logging

import (
	"io"
	"os"
	"strings"

	"geopolis/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var writer io.Writer = os.Stdout

// Init configures the global zerolog logger. When cfg.File is set, log
// output goes to a size-limited file instead of stdout; the same writer is
// reused by the HTTP request logger via Writer().
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	writer = os.Stdout
	if cfg.File != "" {
		if w, err := newCappedFileWriter(cfg.File, cfg.MaxMB); err == nil {
			writer = w
		}
	}
	out := writer
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: writer}
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Writer returns the destination Init selected, for collaborators that want
// to share the log sink (request logging).
func Writer() io.Writer {
	return writer
}
