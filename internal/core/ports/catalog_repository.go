package ports

import (
	"context"

	"github.com/mercatura/catalog-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	// FindByID returns domain.ErrCategoryNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// FindByID returns domain.ErrProductNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// CountByCategory reports how many products reference the category.
	// Used as the pre-delete referential check.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}
