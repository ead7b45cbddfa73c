package port

import (
	"context"
	"sync"

	"github.com/niksmo/eshop/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

type CatalogReader interface {
	ListProducts(
		ctx context.Context, order domain.SortOrder, query string,
	) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}

type CatalogWriter interface {
	CreateProduct(
		ctx context.Context, draft domain.ProductDraft,
	) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type CartAdder interface {
	AddToCart(ctx context.Context, item domain.CartItem) error
	CartAddView(
		ctx context.Context, productID string,
	) (domain.CartAddView, error)
}

type ViewRecorder interface {
	RecordProductView(ctx context.Context, username string, p domain.Product)
}

type CommentAppender interface {
	AddComment(
		ctx context.Context, productID, comment string,
	) (domain.Product, error)
}

type ProductsRepository interface {
	ReadProducts(ctx context.Context) ([]domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
	InsertProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

type CartRepository interface {
	InsertItem(ctx context.Context, item domain.CartItem) error
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}

type PopularityReader interface {
	CartAdds(productID string) (int64, error)
}

type PopularityProcessor interface {
	runnerContextWg
	closer
}

type EventsArchiver interface {
	runnerContextWg
	closer
}

type EventsStorage interface {
	StoreEvents(
		ctx context.Context, username string, evts []domain.ClientEvent,
	) error
}
