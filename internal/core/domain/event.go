package domain

const (
	EventProductView = "view"
	EventCartAdd     = "cart_add"
)

// A ClientEvent captures one client interaction with a product.
type ClientEvent struct {
	Username    string
	ProductID   string
	ProductName string
	Category    string
	Price       float64
	Event       string
	Quantity    int
}
