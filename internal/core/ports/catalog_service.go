package ports

import (
	"context"

	"github.com/mercatura/catalog-api/internal/core/domain"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryPatch carries optional field updates; nil means "leave unchanged".
type CategoryPatch struct {
	Name        *string
	Description *string
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string
}

// ProductPatch carries optional field updates; nil means "leave unchanged".
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *string
}

// CategoryService defines the category use cases.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error)
	Patch(ctx context.Context, id string, patch CategoryPatch) (*domain.Category, error)
	// Delete fails with domain.ErrCategoryInUse while products still
	// reference the category.
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// ProductService defines the product use cases.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Patch(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
