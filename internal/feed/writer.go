package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull      = errors.New("log writer queue full")
	ErrClosed         = errors.New("log writer closed")
	ErrNotStarted     = errors.New("log writer not started")
	ErrAlreadyStarted = errors.New("log writer already started")
)

const (
	defaultQueueSize  = 4096
	defaultBufferSize = 64 * 1024
)

// WriterConfig controls the append-only log writer.
type WriterConfig struct {
	Path          string
	QueueSize     int
	BufferSize    int
	FlushInterval time.Duration
	Truncate      bool
}

func (c WriterConfig) withDefaults() WriterConfig {
	if c.QueueSize == 0 {
		c.QueueSize = defaultQueueSize
	}
	if c.BufferSize == 0 {
		c.BufferSize = defaultBufferSize
	}
	return c
}

// Validate checks if the configuration is usable.
func (c WriterConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("invalid log writer config: Path is empty")
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("invalid log writer config: QueueSize must be > 0")
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("invalid log writer config: BufferSize must be > 0")
	}
	if c.FlushInterval < 0 {
		return fmt.Errorf("invalid log writer config: FlushInterval must be >= 0")
	}
	return nil
}

// LogWriter appends lines to a single output log from a buffered queue.
type LogWriter struct {
	cfg WriterConfig
	ch  chan string
	wg  sync.WaitGroup
	err atomic.Value

	started uint32
	closed  uint32
}

// NewLogWriter creates a log writer and ensures the target directory
// exists.
func NewLogWriter(cfg WriterConfig) (*LogWriter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &LogWriter{
		cfg: cfg,
		ch:  make(chan string, cfg.QueueSize),
	}, nil
}

// Start runs the writer loop in a new goroutine.
func (w *LogWriter) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&w.started, 0, 1) {
		return ErrAlreadyStarted
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if w.cfg.Truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	file, err := os.OpenFile(w.cfg.Path, flags, 0o644)
	if err != nil {
		atomic.StoreUint32(&w.started, 0)
		return err
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx, file)
	}()
	return nil
}

// Close stops the writer and flushes any buffered lines.
func (w *LogWriter) Close() error {
	if atomic.CompareAndSwapUint32(&w.closed, 0, 1) {
		close(w.ch)
	}
	w.wg.Wait()
	return w.Err()
}

// Err returns the first error observed by the writer, if any.
func (w *LogWriter) Err() error {
	if v := w.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

// TryAppend enqueues a line without blocking.
func (w *LogWriter) TryAppend(line string) error {
	if atomic.LoadUint32(&w.closed) != 0 {
		return ErrClosed
	}
	if atomic.LoadUint32(&w.started) == 0 {
		return ErrNotStarted
	}
	if err := w.Err(); err != nil {
		return err
	}
	select {
	case w.ch <- line:
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *LogWriter) run(ctx context.Context, file *os.File) {
	buf := bufio.NewWriterSize(file, w.cfg.BufferSize)

	var flushC <-chan time.Time
	if w.cfg.FlushInterval > 0 {
		ticker := time.NewTicker(w.cfg.FlushInterval)
		defer ticker.Stop()
		flushC = ticker.C
	}

	defer func() {
		if err := buf.Flush(); err != nil && w.Err() == nil {
			w.setErr(err)
		}
		if err := file.Close(); err != nil && w.Err() == nil {
			w.setErr(err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.drainNonBlocking(buf)
			return
		case line, ok := <-w.ch:
			if !ok {
				return
			}
			if err := writeLine(buf, line); err != nil {
				w.setErr(err)
				return
			}
		case <-flushC:
			if err := buf.Flush(); err != nil {
				w.setErr(err)
				return
			}
		}
	}
}

func (w *LogWriter) drainNonBlocking(buf *bufio.Writer) {
	for {
		select {
		case line, ok := <-w.ch:
			if !ok {
				return
			}
			if err := writeLine(buf, line); err != nil {
				w.setErr(err)
				return
			}
		default:
			return
		}
	}
}

func writeLine(buf *bufio.Writer, line string) error {
	if _, err := buf.WriteString(line); err != nil {
		return err
	}
	return buf.WriteByte('\n')
}

func (w *LogWriter) setErr(err error) {
	if err == nil {
		return
	}
	if w.err.Load() != nil {
		return
	}
	w.err.Store(err)
}
