package log

import (
	"fmt"
	"io"
	"strconv"
	"sync"
)

// LineTracer records every doc comment line the collector looks at and
// whether it carried a directive.
type LineTracer interface {
	Trace(file string, line int, text string, directive bool)
}

type lineTracer struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTracer creates a LineTracer. If w is nil, returns a no-op tracer.
func NewTracer(w io.Writer) LineTracer {
	return &lineTracer{w: w}
}

// Trace writes one line: "KEEP file:line text" or "DROP file:line text".
// It is safe for concurrent use.
func (t *lineTracer) Trace(file string, line int, text string, directive bool) {
	if t.w == nil {
		return
	}
	verdict := "DROP"
	if directive {
		verdict = "KEEP"
	}
	out := fmt.Sprintf("%s %s:%d %s\n", verdict, file, line, strconv.Quote(text))

	t.mu.Lock()
	_, _ = io.WriteString(t.w, out)
	t.mu.Unlock()
}
