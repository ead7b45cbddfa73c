package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ConsumerOpt func(*consumerOpts) error

type consumerOpts struct {
	cl          ConsumerClient
	decoder     Decoder
	eventsSaver eventsSaver
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

func ConsumerClientOpt(
	seedBrokers []string, topic, group string,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func ConsumerEventsSaverOpt(s eventsSaver) ConsumerOpt {
	return func(co *consumerOpts) error {
		if s == nil {
			return errors.New("events saver is nil")
		}
		co.eventsSaver = s
		return nil
	}
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func eventToSchemaV1(v domain.ClientEvent) (s schema.ClientEventV1) {
	s.Username = v.Username
	s.ProductID = v.ProductID
	s.ProductName = v.ProductName
	s.Category = v.Category
	s.Price = v.Price
	s.Event = v.Event
	s.Quantity = v.Quantity
	return
}

func schemaV1ToEvent(s schema.ClientEventV1) (v domain.ClientEvent) {
	v.Username = s.Username
	v.ProductID = s.ProductID
	v.ProductName = s.ProductName
	v.Category = s.Category
	v.Price = s.Price
	v.Event = s.Event
	v.Quantity = s.Quantity
	return
}
