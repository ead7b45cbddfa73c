package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
)

var _ port.CatalogReader = (*Service)(nil)
var _ port.CatalogWriter = (*Service)(nil)
var _ port.CartAdder = (*Service)(nil)
var _ port.CommentAppender = (*Service)(nil)

type Service struct {
	products       port.ProductsRepository
	cart           port.CartRepository
	events         port.ClientEventsProducer
	popularityProc port.PopularityProcessor
	archiver       port.EventsArchiver
}

func New(
	products port.ProductsRepository,
	cart port.CartRepository,
	events port.ClientEventsProducer,
	popularityProc port.PopularityProcessor,
	archiver port.EventsArchiver,
) Service {
	return Service{
		products,
		cart,
		events,
		popularityProc,
		archiver,
	}
}

// Run runs the services components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(2)
	go s.popularityProc.Run(ctx, stopFn, &wg)
	go s.archiver.Run(ctx, stopFn, &wg)
	wg.Wait()
}

func (s Service) Close() {
	s.popularityProc.Close()
	s.archiver.Close()
}

// updateExisting persists p through the optimistic write path.
//
// A write conflict is re-derived to [domain.ErrNotFound] when the
// row has since been deleted, otherwise it stays a conflict.
func (s Service) updateExisting(ctx context.Context, p domain.Product) error {
	err := s.products.UpdateProduct(ctx, p)
	if err == nil {
		return nil
	}

	if !errors.Is(err, domain.ErrConflict) {
		return err
	}

	_, readErr := s.products.ReadProduct(ctx, p.ProductID)
	if errors.Is(readErr, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// emitEvent produces the client event in best-effort manner.
func (s Service) emitEvent(ctx context.Context, evt domain.ClientEvent) {
	const op = "Service.emitEvent"

	if s.events == nil {
		return
	}

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.With("op", op).Warn("failed to produce client event", "err", err)
	}
}

func parseProductID(op, productID string) error {
	if err := uuid.Validate(productID); err != nil {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
