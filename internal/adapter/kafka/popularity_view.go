package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/eshop/internal/core/port"
)

var _ port.PopularityReader = (*PopularityView)(nil)

// A PopularityView serves reads from the cart additions group table.
type PopularityView struct {
	gv *goka.View
}

func NewPopularityView(
	seedBrokers []string, groupTable string,
) (PopularityView, error) {
	const op = "NewPopularityView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		cartAddsCodec{},
	)
	if err != nil {
		return PopularityView{}, opErr(err, op)
	}

	return PopularityView{gv}, nil
}

func (v PopularityView) Run(ctx context.Context) {
	const op = "PopularityView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// CartAdds returns the cart additions total for the product id.
//
// A product without additions yields zero.
func (v PopularityView) CartAdds(productID string) (int64, error) {
	const op = "PopularityView.CartAdds"

	val, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}

	if val == nil {
		return 0, nil
	}

	cv, ok := val.(cartAddsValue)
	if !ok {
		return 0, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, val), op,
		)
	}
	return int64(cv), nil
}
