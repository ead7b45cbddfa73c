package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A ClientEventsProducer produces [domain.ClientEvent] values
// keyed by product id.
type ClientEventsProducer struct {
	opPrefix string
	producer producer
	encoder  Encoder
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "ClientEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return ClientEventsProducer{
		opPrefix: opPrefix,
		producer: p,
		encoder:  options.encoder,
	}, nil
}

func (p ClientEventsProducer) Close() {
	p.producer.close()
}

func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p ClientEventsProducer) createRecord(
	evt domain.ClientEvent,
) (*kgo.Record, error) {
	v, err := p.encoder.Encode(eventToSchemaV1(evt))
	if err != nil {
		return nil, err
	}
	return &kgo.Record{Key: []byte(evt.ProductID), Value: v}, nil
}
