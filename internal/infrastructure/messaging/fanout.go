package messaging

import (
	"context"
	"errors"

	"job-board/internal/domain/job"
)

// Fanout publishes every event to all sinks and joins their errors.
type Fanout []job.EventPublisher

var _ job.EventPublisher = Fanout(nil)

func (f Fanout) Publish(ctx context.Context, evt job.Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
