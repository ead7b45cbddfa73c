package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
)

var _ port.ViewRecorder = (*Service)(nil)

// ListProducts returns the catalog ordered by the requested sort order
// and narrowed to names containing query when query is not empty.
//
// An unknown sort order keeps the store-native order.
func (s Service) ListProducts(
	ctx context.Context, order domain.SortOrder, query string,
) ([]domain.Product, error) {
	const op = "Service.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.ReadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch order {
	case domain.SortPriceAscending:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceDescending:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}

	if query != "" {
		ps = slices.DeleteFunc(ps, func(p domain.Product) bool {
			return !strings.Contains(p.Name, query)
		})
	}

	return ps, nil
}

func (s Service) ListByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	const op = "Service.ListByCategory"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.ReadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps = slices.DeleteFunc(ps, func(p domain.Product) bool {
		return p.Category == "" || p.Category != category
	})

	return ps, nil
}

func (s Service) GetProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "Service.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := parseProductID(op, productID); err != nil {
		return domain.Product{}, err
	}

	p, err := s.products.ReadProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) CreateProduct(
	ctx context.Context, draft domain.ProductDraft,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p := draft.Apply(domain.Product{ProductID: uuid.NewString()})

	if err := s.products.InsertProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := parseProductID(op, p.ProductID); err != nil {
		return domain.Product{}, err
	}

	if err := s.updateExisting(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Version++
	return p, nil
}

func (s Service) DeleteProduct(ctx context.Context, productID string) error {
	const op = "Service.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := parseProductID(op, productID); err != nil {
		return err
	}

	if err := s.products.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RecordProductView emits the analytics event for a product details view.
func (s Service) RecordProductView(
	ctx context.Context, username string, p domain.Product,
) {
	s.emitEvent(ctx, domain.ClientEvent{
		Username:    username,
		ProductID:   p.ProductID,
		ProductName: p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Event:       domain.EventProductView,
	})
}
