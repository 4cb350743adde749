package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/ports"
)

// Cache keys for list results.
const (
	cacheKeyCategories = "categories"
	cacheKeyProducts   = "products"
)

// ListCache abstracts the read-through list cache (Redis). Cache failures are
// never fatal: a miss is returned and the repository is consulted.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// CategoryService implements category CRUD with a referential guard on
// delete: a category that products still reference cannot be removed.
type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	cache      ListCache
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, cache ListCache, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, cache: cache, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var cached []domain.Category
	if hit, err := s.cache.Get(ctx, cacheKeyCategories, &cached); err != nil {
		s.log.Warn().Err(err).Msg("category cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyCategories, list); err != nil {
		s.log.Warn().Err(err).Msg("category cache write failed")
	}
	return list, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	created, err := s.categories.Create(ctx, &domain.Category{
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyCategories)
	s.log.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in ports.CategoryInput) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}

	category.Name = name
	category.Description = in.Description
	category.UpdatedAt = time.Now().UTC()

	updated, err := s.categories.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return updated, nil
}

func (s *CategoryService) Patch(ctx context.Context, id string, patch ports.CategoryPatch) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		category.Name = name
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	category.UpdatedAt = time.Now().UTC()

	updated, err := s.categories.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategories)
	s.log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

// DeleteAll removes every category. Refused while any product still
// references a category (empty category id = count all).
func (s *CategoryService) DeleteAll(ctx context.Context) error {
	n, err := s.products.CountByCategory(ctx, "")
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categories.DeleteAll(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

// ProductService implements product CRUD. Category references are validated
// on create and whenever the reference changes.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	cache      ListCache
	log        zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, cache ListCache, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, cache: cache, log: log}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if hit, err := s.cache.Get(ctx, cacheKeyProducts, &cached); err != nil {
		s.log.Warn().Err(err).Msg("product cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	list, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyProducts, list); err != nil {
		s.log.Warn().Err(err).Msg("product cache write failed")
	}
	return list, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := validateProductFields(in.Name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.products.Create(ctx, &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyProducts)
	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateProductFields(in.Name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	if in.CategoryID != "" && in.CategoryID != product.CategoryID {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = in.CategoryID
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyProducts)
	return updated, nil
}

func (s *ProductService) Patch(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		product.Name = name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, domain.ErrValidation
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, domain.ErrValidation
		}
		product.Stock = *patch.Stock
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *patch.CategoryID
	}
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyProducts)
	return updated, nil
}

// UpdateStock sets the absolute stock level.
func (s *ProductService) UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	if stock < 0 {
		return nil, domain.ErrValidation
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Stock = stock
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyProducts)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyProducts)
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// checkCategory validates the category reference carried in a request body.
// A reference to a nonexistent category is a bad request, not a missed
// lookup: 404 stays reserved for the id in the URL.
func (s *ProductService) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return domain.ErrValidation
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.ErrValidation
		}
		return err
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

func validateProductFields(name string, price float64, stock int) error {
	if strings.TrimSpace(name) == "" || price < 0 || stock < 0 {
		return domain.ErrValidation
	}
	return nil
}
