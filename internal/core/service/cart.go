package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/eshop/internal/core/domain"
)

// AddToCart persists one cart association for the item owner.
//
// The referenced product must exist. Quantity bounds are
// intentionally not checked, see DESIGN.md.
func (s Service) AddToCart(ctx context.Context, item domain.CartItem) error {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := parseProductID(op, item.ProductID); err != nil {
		return err
	}

	p, err := s.products.ReadProduct(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	item.ItemID = uuid.NewString()
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	if err := s.cart.InsertItem(ctx, item); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.ClientEvent{
		Username:    item.UserID,
		ProductID:   p.ProductID,
		ProductName: p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Event:       domain.EventCartAdd,
		Quantity:    item.Quantity,
	})

	return nil
}

// CartAddView prefills the add-to-cart form.
//
// An empty productID is tolerated and yields the zero model.
func (s Service) CartAddView(
	ctx context.Context, productID string,
) (domain.CartAddView, error) {
	const op = "Service.CartAddView"

	if err := ctx.Err(); err != nil {
		return domain.CartAddView{}, fmt.Errorf("%s: %w", op, err)
	}

	if productID == "" {
		return domain.CartAddView{}, nil
	}

	if err := parseProductID(op, productID); err != nil {
		return domain.CartAddView{}, err
	}

	p, err := s.products.ReadProduct(ctx, productID)
	if err != nil {
		return domain.CartAddView{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.CartAddView{
		ProductID:   p.ProductID,
		ProductName: p.Name,
		Price:       p.Price,
	}, nil
}
