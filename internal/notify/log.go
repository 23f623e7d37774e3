package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/erazemk/evidenca/internal/model"
)

// LogSink writes each event as an info line carrying the rendered message.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, e model.Event) {
	ev := s.log.Info().Str("event", string(e.Kind))
	if e.StoreID != "" {
		ev = ev.Str("store_id", e.StoreID)
	}
	if e.Entity != "" {
		ev = ev.Str("entity", string(e.Entity)).Int64("id", e.ID)
	}
	if e.OldName != "" {
		ev = ev.Str("old_name", e.OldName)
	}
	ev.Msg(Message(e))
}
