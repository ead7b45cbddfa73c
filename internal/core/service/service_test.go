package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductsRepository struct {
	mock.Mock
}

func (m *MockProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductsRepository) DeleteProduct(
	ctx context.Context, productID string,
) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) InsertItem(
	ctx context.Context, item domain.CartItem,
) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func newService(
	products *MockProductsRepository, cart *MockCartRepository,
) service.Service {
	return service.New(products, cart, nil, nil, nil)
}

func TestListProducts(t *testing.T) {
	book := domain.Product{
		ProductID: uuid.NewString(), Name: "Book", Price: 10,
	}
	pen := domain.Product{
		ProductID: uuid.NewString(), Name: "Pen", Price: 2,
	}

	t.Run("PriceAscending", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProducts", t.Context()).
			Return([]domain.Product{book, pen}, nil)

		s := newService(products, new(MockCartRepository))
		got, err := s.ListProducts(t.Context(), domain.SortPriceAscending, "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Pen", got[0].Name)
		assert.Equal(t, "Book", got[1].Name)
	})

	t.Run("PriceDescending", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProducts", t.Context()).
			Return([]domain.Product{pen, book}, nil)

		s := newService(products, new(MockCartRepository))
		got, err := s.ListProducts(t.Context(), domain.SortPriceDescending, "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Book", got[0].Name)
		assert.Equal(t, "Pen", got[1].Name)
	})

	t.Run("UnknownOrderKeepsNativeOrder", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProducts", t.Context()).
			Return([]domain.Product{book, pen}, nil)

		s := newService(products, new(MockCartRepository))
		got, err := s.ListProducts(t.Context(), "rating_ascending", "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Book", got[0].Name)
		assert.Equal(t, "Pen", got[1].Name)
	})

	t.Run("QueryFiltersBySubstring", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProducts", t.Context()).
			Return([]domain.Product{book, pen}, nil)

		s := newService(products, new(MockCartRepository))
		got, err := s.ListProducts(t.Context(), domain.SortDefault, "oo")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Book", got[0].Name)
	})

	t.Run("QueryIsCaseSensitive", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProducts", t.Context()).
			Return([]domain.Product{book, pen}, nil)

		s := newService(products, new(MockCartRepository))
		got, err := s.ListProducts(t.Context(), domain.SortDefault, "book")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestListByCategory(t *testing.T) {
	withCategory := domain.Product{
		ProductID: uuid.NewString(), Name: "Book", Category: "stationery",
	}
	otherCategory := domain.Product{
		ProductID: uuid.NewString(), Name: "Phone", Category: "electronics",
	}
	noCategory := domain.Product{
		ProductID: uuid.NewString(), Name: "Pen",
	}

	products := new(MockProductsRepository)
	products.On("ReadProducts", mock.Anything).Return(
		[]domain.Product{withCategory, otherCategory, noCategory}, nil,
	)

	s := newService(products, new(MockCartRepository))
	got, err := s.ListByCategory(t.Context(), "stationery")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Book", got[0].Name)
}

func TestGetProduct(t *testing.T) {
	t.Run("UnparseableID", func(t *testing.T) {
		s := newService(
			new(MockProductsRepository), new(MockCartRepository),
		)
		_, err := s.GetProduct(t.Context(), "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("MissingRow", func(t *testing.T) {
		productID := uuid.NewString()
		products := new(MockProductsRepository)
		products.On("ReadProduct", t.Context(), productID).
			Return(domain.Product{}, domain.ErrNotFound)

		s := newService(products, new(MockCartRepository))
		_, err := s.GetProduct(t.Context(), productID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCreateProduct(t *testing.T) {
	draft := domain.ProductDraft{
		Name:        "Book",
		Image:       "book.png",
		Description: "hardcover",
		Category:    "stationery",
		Price:       10,
		Rating:      4,
	}

	products := new(MockProductsRepository)
	products.On("InsertProduct", t.Context(), mock.Anything).Return(nil)

	s := newService(products, new(MockCartRepository))
	p, err := s.CreateProduct(t.Context(), draft)
	require.NoError(t, err)

	assert.NoError(t, uuid.Validate(p.ProductID))
	assert.Equal(t, draft.Name, p.Name)
	assert.Equal(t, draft.Image, p.Image)
	assert.Equal(t, draft.Description, p.Description)
	assert.Equal(t, draft.Category, p.Category)
	assert.Equal(t, draft.Price, p.Price)
	assert.Equal(t, draft.Rating, p.Rating)
}

func TestUpdateProduct(t *testing.T) {
	t.Run("ConflictOnLivingRow", func(t *testing.T) {
		p := domain.Product{ProductID: uuid.NewString(), Name: "Book"}

		products := new(MockProductsRepository)
		products.On("UpdateProduct", t.Context(), p).
			Return(domain.ErrConflict)
		products.On("ReadProduct", t.Context(), p.ProductID).
			Return(p, nil)

		s := newService(products, new(MockCartRepository))
		_, err := s.UpdateProduct(t.Context(), p)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("StaleCopyOfDeletedRow", func(t *testing.T) {
		p := domain.Product{ProductID: uuid.NewString(), Name: "Book"}

		products := new(MockProductsRepository)
		products.On("UpdateProduct", t.Context(), p).
			Return(domain.ErrConflict)
		products.On("ReadProduct", t.Context(), p.ProductID).
			Return(domain.Product{}, domain.ErrNotFound)

		s := newService(products, new(MockCartRepository))
		_, err := s.UpdateProduct(t.Context(), p)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("VersionBumpOnSuccess", func(t *testing.T) {
		p := domain.Product{ProductID: uuid.NewString(), Version: 3}

		products := new(MockProductsRepository)
		products.On("UpdateProduct", t.Context(), p).Return(nil)

		s := newService(products, new(MockCartRepository))
		got, err := s.UpdateProduct(t.Context(), p)
		require.NoError(t, err)
		assert.EqualValues(t, 4, got.Version)
	})
}

func TestAddComment(t *testing.T) {
	productID := uuid.NewString()

	t.Run("FirstAndSecondComment", func(t *testing.T) {
		stored := domain.Product{ProductID: productID, Name: "Book"}

		products := new(MockProductsRepository)
		products.On("ReadProduct", t.Context(), productID).
			Return(stored, nil).Once()
		products.On("UpdateProduct", t.Context(), mock.Anything).Return(nil)

		s := newService(products, new(MockCartRepository))
		p, err := s.AddComment(t.Context(), productID, "hello")
		require.NoError(t, err)
		assert.Equal(t, "\nhello", p.Comments)

		stored.Comments = p.Comments
		stored.Version = p.Version
		products.On("ReadProduct", t.Context(), productID).
			Return(stored, nil).Once()

		p, err = s.AddComment(t.Context(), productID, "world")
		require.NoError(t, err)
		assert.Equal(t, "\nhello\nworld", p.Comments)
	})

	t.Run("MissingProduct", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProduct", t.Context(), productID).
			Return(domain.Product{}, domain.ErrNotFound)

		s := newService(products, new(MockCartRepository))
		_, err := s.AddComment(t.Context(), productID, "hello")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAddToCart(t *testing.T) {
	productID := uuid.NewString()
	product := domain.Product{ProductID: productID, Name: "Book", Price: 10}

	t.Run("PersistsOneAssociation", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProduct", t.Context(), productID).
			Return(product, nil)

		cart := new(MockCartRepository)
		cart.On(
			"InsertItem", t.Context(),
			mock.MatchedBy(func(item domain.CartItem) bool {
				return item.UserID == "user1" &&
					item.ProductID == productID &&
					item.Quantity == 3 &&
					uuid.Validate(item.ItemID) == nil
			}),
		).Return(nil)

		s := newService(products, cart)
		err := s.AddToCart(t.Context(), domain.CartItem{
			UserID:    "user1",
			ProductID: productID,
			Quantity:  3,
		})
		require.NoError(t, err)
		cart.AssertNumberOfCalls(t, "InsertItem", 1)
	})

	t.Run("UnknownProductRejected", func(t *testing.T) {
		products := new(MockProductsRepository)
		products.On("ReadProduct", t.Context(), productID).
			Return(domain.Product{}, domain.ErrNotFound)

		cart := new(MockCartRepository)
		s := newService(products, cart)
		err := s.AddToCart(t.Context(), domain.CartItem{
			UserID:    "user1",
			ProductID: productID,
			Quantity:  3,
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		cart.AssertNotCalled(t, "InsertItem", mock.Anything, mock.Anything)
	})
}

func TestCartAddView(t *testing.T) {
	t.Run("EmptyIDTolerated", func(t *testing.T) {
		s := newService(
			new(MockProductsRepository), new(MockCartRepository),
		)
		v, err := s.CartAddView(t.Context(), "")
		require.NoError(t, err)
		assert.Zero(t, v)
	})

	t.Run("PrefillsFromProduct", func(t *testing.T) {
		productID := uuid.NewString()
		products := new(MockProductsRepository)
		products.On("ReadProduct", t.Context(), productID).Return(
			domain.Product{ProductID: productID, Name: "Book", Price: 10}, nil,
		)

		s := newService(products, new(MockCartRepository))
		v, err := s.CartAddView(t.Context(), productID)
		require.NoError(t, err)
		assert.Equal(t, productID, v.ProductID)
		assert.Equal(t, "Book", v.ProductName)
		assert.InEpsilon(t, 10.0, v.Price, 1e-9)
	})
}

func TestNextSortOrder(t *testing.T) {
	assert.Equal(t, domain.SortPriceAscending, domain.NextSortOrder(""))
	assert.Equal(t,
		domain.SortPriceAscending, domain.NextSortOrder(domain.SortDefault))
	assert.Equal(t,
		domain.SortPriceAscending,
		domain.NextSortOrder(domain.SortPriceDescending))
	assert.Equal(t,
		domain.SortPriceDescending,
		domain.NextSortOrder(domain.SortPriceAscending))
}
