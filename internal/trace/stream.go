package trace

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// StreamTracer writes events to w as they arrive.
type StreamTracer struct {
	mu      sync.Mutex
	w       io.Writer
	bw      *bufio.Writer
	scratch []byte
	level   Level
	format  Format
	err     error // first write error, sticky
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, bw: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	t.scratch = AppendEvent(t.scratch[:0], ev, t.format)
	if _, err := t.bw.Write(t.scratch); err != nil {
		t.err = err
		return
	}
	// концы файлов сбрасываются сразу, чтобы tail -f видел прогресс
	if ev.Kind == KindSpanEnd && ev.Scope <= ScopeFile {
		t.err = t.bw.Flush()
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.err = t.bw.Flush()
	return t.err
}

// Close flushes and closes the writer unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	c, ok := t.w.(io.Closer)
	if !ok || isStdStream(t.w) {
		return err
	}
	return errors.Join(err, c.Close())
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
