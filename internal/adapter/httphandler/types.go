package httphandler

import "github.com/niksmo/eshop/internal/core/domain"

type (
	Product struct {
		ProductID   string  `json:"product_id"`
		Name        string  `json:"name"`
		Image       string  `json:"image"`
		Description string  `json:"description"`
		Category    string  `json:"category,omitempty"`
		Price       float64 `json:"price"`
		Rating      int     `json:"rating"`
		Comments    string  `json:"comments,omitempty"`
		Version     int64   `json:"version"`
	}

	ProductList struct {
		Products      []Product `json:"products"`
		NextSortOrder string    `json:"next_sort_order,omitempty"`
	}

	// A ProductForm enumerates the caller-writable fields.
	ProductForm struct {
		ProductID   string  `json:"product_id,omitempty"`
		Name        string  `json:"name"`
		Image       string  `json:"image"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Rating      int     `json:"rating"`
		Version     int64   `json:"version,omitempty"`
	}

	CommentForm struct {
		Comment string `json:"comment"`
	}

	CartItemForm struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}

	CartAddView struct {
		ProductID   string  `json:"product_id,omitempty"`
		ProductName string  `json:"product_name,omitempty"`
		Price       float64 `json:"price,omitempty"`
	}

	Popularity struct {
		ProductID string `json:"product_id"`
		CartAdds  int64  `json:"cart_adds"`
	}

	ValidationErrors struct {
		Errors []string `json:"errors"`
	}
)

func toProductView(p domain.Product) Product {
	return Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Comments:    p.Comments,
		Version:     p.Version,
	}
}

func toProductListView(
	ps []domain.Product, next domain.SortOrder,
) ProductList {
	l := ProductList{
		Products:      make([]Product, 0, len(ps)),
		NextSortOrder: string(next),
	}
	for _, p := range ps {
		l.Products = append(l.Products, toProductView(p))
	}
	return l
}

func (f ProductForm) toDraft() domain.ProductDraft {
	return domain.ProductDraft{
		Name:        f.Name,
		Image:       f.Image,
		Description: f.Description,
		Category:    f.Category,
		Price:       f.Price,
		Rating:      f.Rating,
	}
}

func (f ProductForm) validate() (errs []string) {
	if f.Name == "" {
		errs = append(errs, "name is required")
	}
	if f.Image == "" {
		errs = append(errs, "image is required")
	}
	if f.Description == "" {
		errs = append(errs, "description is required")
	}
	return errs
}
