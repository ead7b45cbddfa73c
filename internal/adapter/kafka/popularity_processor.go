package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
	"github.com/niksmo/eshop/pkg/schema"
)

var _ port.PopularityProcessor = (*PopularityProcessor)(nil)

// A clientEventCodec used for serde [schema.ClientEventV1]
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A cartAddsValue represents the cart additions total
// for particular product id.
type cartAddsValue int64

// A cartAddsCodec used for serde [cartAddsValue]
type cartAddsCodec struct{}

func (cartAddsCodec) Encode(v any) ([]byte, error) {
	const op = "cartAddsCodec.Encode"
	cv, ok := v.(cartAddsValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendInt([]byte(nil), int64(cv), 10)
	return data, nil
}

func (cartAddsCodec) Decode(data []byte) (any, error) {
	const op = "cartAddsCodec.Decode"
	cv, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return cartAddsValue(cv), nil
}

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A PopularityProcessor aggregates cart additions
// from the client events stream into the group table,
// keyed by product id.
type PopularityProcessor struct {
	processor processor
}

func NewPopularityProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	clientEventSerde Serde,
) (PopularityProcessor, error) {
	const op = "NewPopularityProc"

	var p PopularityProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newClientEventCodec(clientEventSerde),
			p.processFn,
		),
		goka.Persist(cartAddsCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg)
	if err != nil {
		return PopularityProcessor{}, opErr(err, op)
	}

	p.processor = processor{opPrefix: "PopularityProcessor", gp: gp}
	return p, nil
}

func (p PopularityProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.processor.run(ctx, stopFn, wg)
}

func (p PopularityProcessor) Close() {
	p.processor.close()
}

func (PopularityProcessor) processFn(ctx goka.Context, msg any) {
	const op = "PopularityProcessor.processFn"
	log := slog.With("op", op)

	event, _ := msg.(schema.ClientEventV1)
	if event.Event != domain.EventCartAdd {
		return
	}

	var cur cartAddsValue
	if v := ctx.Value(); v != nil {
		cur, _ = v.(cartAddsValue)
	}
	cur++
	ctx.SetValue(cur)

	log.Info(
		"set cart adds value",
		"productID", ctx.Key(),
		"cartAdds", cur,
	)
}
