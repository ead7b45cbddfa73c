package domain

import "time"

type (
	CartItem struct {
		ItemID    string
		UserID    string
		ProductID string
		Quantity  int
		AddedAt   time.Time
	}

	// A CartAddView prefills the add-to-cart form.
	CartAddView struct {
		ProductID   string
		ProductName string
		Price       float64
	}
)
