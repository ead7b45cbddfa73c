package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

// ReadProducts returns the whole catalog in store-native order.
func (r ProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, name, image, description,
			category, price, rating, comments, version
		FROM products;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, name, image, description,
			category, price, rating, comments, version
		FROM products
		WHERE product_id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, productID)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) error {
	const op = "ProductsRepository.InsertProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (
			product_id, name, image, description,
			category, price, rating, comments, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := r.sqldb.ExecContext(ctx, query,
		p.ProductID, p.Name, p.Image, p.Description,
		nullable(p.Category), p.Price, p.Rating,
		nullable(p.Comments), p.Version,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProduct writes p guarded by its version.
//
// Zero affected rows means the row changed or vanished under the
// caller, reported as [domain.ErrConflict].
func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) error {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products SET
			name = $3,
			image = $4,
			description = $5,
			category = $6,
			price = $7,
			rating = $8,
			comments = $9,
			version = version + 1
		WHERE product_id = $1 AND version = $2;`

	res, err := r.sqldb.ExecContext(ctx, query,
		p.ProductID, p.Version,
		p.Name, p.Image, p.Description,
		nullable(p.Category), p.Price, p.Rating, nullable(p.Comments),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return nil
}

func (r ProductsRepository) DeleteProduct(
	ctx context.Context, productID string,
) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM products WHERE product_id = $1;`

	_, err := r.sqldb.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func scanProduct(scan func(dest ...any) error) (domain.Product, error) {
	var (
		p        domain.Product
		category sql.NullString
		comments sql.NullString
	)
	err := scan(
		&p.ProductID, &p.Name, &p.Image, &p.Description,
		&category, &p.Price, &p.Rating, &comments, &p.Version,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.Category = category.String
	p.Comments = comments.String
	return p, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
