package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimson-sun/wmsprobe/internal/model"
	"github.com/crimson-sun/wmsprobe/internal/output"
)

// Multi delivers each artifact to several outputs, e.g. stdout and a file.
// A failing output does not stop delivery to the others.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over the non-nil outputs given.
func New(outputs ...output.Output) *Multi {
	m := &Multi{}
	for _, o := range outputs {
		if o != nil {
			m.outputs = append(m.outputs, o)
		}
	}
	return m
}

// Len returns the number of wrapped outputs.
func (m *Multi) Len() int {
	return len(m.outputs)
}

// Write delivers a to every wrapped output and joins their errors.
func (m *Multi) Write(ctx context.Context, a model.Artifact) error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Write(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped output and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
