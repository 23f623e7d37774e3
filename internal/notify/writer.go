package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/erazemk/evidenca/internal/model"
)

// WriterSink prints the rendered message of each event on its own line.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Notify(_ context.Context, e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, Message(e))
}
