// Package logging builds the JSON-lines logger shared by the server, the
// access log middleware and the startup routines.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.MessageFieldName = "msg"
}

// New returns a logger writing one JSON object per line to w. Every entry
// carries a "ts" field formatted as RFC3339Nano in loc.
func New(w io.Writer, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	return zerolog.New(w).Hook(timestampHook{loc: loc})
}

// Default writes to stderr in UTC. It is used before the configured timezone
// is known, e.g. when a command fails.
func Default() zerolog.Logger {
	return New(os.Stderr, time.UTC)
}

type timestampHook struct {
	loc *time.Location
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("ts", time.Now().In(h.loc).Format(time.RFC3339Nano))
}
