package domain

type (
	Product struct {
		ProductID   string
		Name        string
		Image       string
		Description string
		Category    string
		Price       float64
		Rating      int
		Comments    string
		Version     int64
	}

	// A ProductDraft holds the caller-writable fields.
	// Binding the full entity is deliberately not supported.
	ProductDraft struct {
		Name        string
		Image       string
		Description string
		Category    string
		Price       float64
		Rating      int
	}
)

func (d ProductDraft) Apply(p Product) Product {
	p.Name = d.Name
	p.Image = d.Image
	p.Description = d.Description
	p.Category = d.Category
	p.Price = d.Price
	p.Rating = d.Rating
	return p
}

type SortOrder string

const (
	SortDefault         SortOrder = "default"
	SortPriceAscending  SortOrder = "price_ascending"
	SortPriceDescending SortOrder = "price_descending"
)

// NextSortOrder returns the sort order a subsequent listing
// request should use after the current one.
func NextSortOrder(cur SortOrder) SortOrder {
	switch cur {
	case "", SortDefault, SortPriceDescending:
		return SortPriceAscending
	default:
		return SortPriceDescending
	}
}
