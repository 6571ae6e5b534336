package output

import (
	"context"

	"github.com/crimson-sun/wmsprobe/internal/model"
)

// Output defines the interface for artifact destinations.
type Output interface {
	Write(ctx context.Context, a model.Artifact) error
	Close() error
}
