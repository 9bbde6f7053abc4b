package application

import (
	"context"
	"errors"

	"smart-home-mock/internal/domain"
)

type Recorder interface {
	Record(ctx context.Context, inv domain.Invocation) error
}

type NoopRecorder struct{}

func (n *NoopRecorder) Record(_ context.Context, _ domain.Invocation) error {
	return nil
}

// Recorders fans an invocation out to every recorder and joins their errors.
type Recorders []Recorder

func (rs Recorders) Record(ctx context.Context, inv domain.Invocation) error {
	var errs []error
	for _, r := range rs {
		if err := r.Record(ctx, inv); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
