package service

import (
	"context"
	"fmt"

	"github.com/niksmo/eshop/internal/core/domain"
)

// AddComment appends one comment line to the product comment log
// and persists the product through the optimistic write path.
//
// The log is a newline-delimited blob: the field starts from the
// empty-string sentinel, every entry is prefixed with "\n".
func (s Service) AddComment(
	ctx context.Context, productID, comment string,
) (domain.Product, error) {
	const op = "Service.AddComment"

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

	p.Comments += "\n" + comment

	if err := s.updateExisting(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Version++
	return p, nil
}
