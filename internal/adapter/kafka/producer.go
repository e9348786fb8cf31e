package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/niksmo/qkart/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	_ port.ActivityProducer = (*ActivityProducer)(nil)
	_ port.ActivityProducer = NoopProducer{}
)

// An ActivityProducer writes [domain.Activity] records keyed by username,
// so the activity of one user stays ordered within a partition.
type ActivityProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewActivityProducer(opts ...ProducerOpt) (ActivityProducer, error) {
	const op = "NewActivityProducer"

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ActivityProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if options.cl == nil || options.encoder == nil {
		return ActivityProducer{}, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}
	return ActivityProducer{options.cl, options.encoder}, nil
}

func (p ActivityProducer) Close() {
	const op = "ActivityProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ActivityProducer) PublishActivity(
	ctx context.Context, a domain.Activity,
) error {
	const op = "ActivityProducer.PublishActivity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(a)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p ActivityProducer) createRecord(a domain.Activity) (*kgo.Record, error) {
	v, err := p.encoder.Encode(toSchema(a))
	if err != nil {
		return nil, err
	}
	return &kgo.Record{Key: []byte(a.Username), Value: v}, nil
}

func toSchema(a domain.Activity) (s schema.ActivityV1) {
	s.ID = a.ID.String()
	s.Kind = string(a.Kind)
	s.Username = a.Username
	s.ProductID = a.ProductID
	s.Query = a.Query
	s.Quantity = a.Quantity
	s.OccurredAt = a.OccurredAt.UTC()
	return
}

// A NoopProducer drops every activity. Used when events are disabled.
type NoopProducer struct{}

func (NoopProducer) PublishActivity(context.Context, domain.Activity) error {
	return nil
}

func (NoopProducer) Close() {}
