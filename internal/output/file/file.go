package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/wmsprobe/internal/model"
	"github.com/crimson-sun/wmsprobe/internal/output"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Output.
type Option func(*Output)

// WithAppend keeps existing file contents instead of truncating.
func WithAppend() Option {
	return func(o *Output) { o.flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// WithLazyOpen defers opening (and truncating) the file until the first
// Write. If nothing is written the file is left as it was.
func WithLazyOpen() Option {
	return func(o *Output) { o.lazy = true }
}

// Output writes artifact bodies to a file with buffered I/O.
type Output struct {
	w       *bufio.Writer
	f       *os.File
	mu      sync.Mutex
	path    string
	flags   int
	bufSize int
	lazy    bool
	closed  bool
	written int64
}

// New creates a file output writing to path. The file is truncated unless
// WithAppend is given.
func New(path string, opts ...Option) (*Output, error) {
	o := &Output{
		path:    path,
		flags:   os.O_CREATE | os.O_WRONLY | os.O_TRUNC,
		bufSize: defaultBufSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.lazy {
		return o, nil
	}
	if err := o.open(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Output) open() error {
	f, err := os.OpenFile(o.path, o.flags, 0644)
	if err != nil {
		return fmt.Errorf("file output: open %s: %w", o.path, err)
	}
	o.f = f
	o.w = bufio.NewWriterSize(f, o.bufSize)
	return nil
}

// Write appends the formatted artifact to the file.
func (o *Output) Write(_ context.Context, a model.Artifact) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return fmt.Errorf("file output: write %s: %w", o.path, os.ErrClosed)
	}
	if o.f == nil {
		if err := o.open(); err != nil {
			return err
		}
	}
	n, err := o.w.Write(output.Format(a))
	o.written += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Written returns the number of bytes accepted so far.
func (o *Output) Written() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.written
}

// Close flushes the buffer and closes the file. Closing twice is a no-op.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.f == nil {
		return nil
	}
	f := o.f
	o.f = nil
	if err := o.w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return f.Close()
}
