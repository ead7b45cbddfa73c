package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
)

var _ port.CartRepository = (*CartRepository)(nil)

type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

func (r CartRepository) InsertItem(
	ctx context.Context, item domain.CartItem,
) error {
	const op = "CartRepository.InsertItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_items (item_id, user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5);`

	_, err := r.sqldb.ExecContext(ctx, query,
		item.ItemID, item.UserID, item.ProductID, item.Quantity, item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
