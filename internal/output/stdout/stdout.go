package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/crimson-sun/wmsprobe/internal/model"
	"github.com/crimson-sun/wmsprobe/internal/output"
)

// Output writes artifact bodies to stdout.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a stdout Output.
func New() *Output {
	return NewWriter(os.Stdout)
}

// NewWriter creates an Output writing to w instead of stdout.
func NewWriter(w io.Writer) *Output {
	return &Output{w: w}
}

func (o *Output) Write(_ context.Context, a model.Artifact) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := o.w.Write(output.Format(a)); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
