package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrTooFewOpts = errors.New("too few options")

type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func (so *serdeOpts) apply(opts ...Opt) error {
	for _, o := range opts {
		if err := o(so); err != nil {
			return err
		}
	}
	if so.subject == "" || so.si == nil {
		return ErrTooFewOpts
	}
	return nil
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		so.si = si
		return nil
	}
}

// NewSerdeActivityV1 returns a serde for [ActivityV1] values in the schema
// registry wire format. Both [SubjectOpt] and [SchemaIdentifierOpt] are
// required.
func NewSerdeActivityV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeActivityV1"

	var so serdeOpts
	if err := so.apply(opts...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s, err := newAvroSerde(ctx, so, ActivitySchemaTextV1, ActivityV1{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func newAvroSerde(
	ctx context.Context, so serdeOpts, schemaText string, example any,
) (*sr.Serde, error) {
	avroSchema, err := avro.Parse(schemaText)
	if err != nil {
		return nil, err
	}

	id, err := so.si.DetermineID(ctx, so.subject, schemaText)
	if err != nil {
		return nil, err
	}

	s := new(sr.Serde)
	s.Register(
		id,
		example,
		sr.EncodeFn(func(v any) ([]byte, error) {
			return avro.Marshal(avroSchema, v)
		}),
		sr.DecodeFn(func(data []byte, v any) error {
			return avro.Unmarshal(avroSchema, data, v)
		}),
	)
	return s, nil
}
