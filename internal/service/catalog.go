package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// Максимум товаров в одной выборке каталога
const maxProductLimit = 100

// ProductService — CRUD каталога товаров.
type ProductService interface {
	ListProducts(ctx context.Context, activeOnly bool, limit int) ([]*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch *storage.ProductPatch) error
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage) ProductService {
	return &productService{log: log, productRepo: productRepo}
}

func (s *productService) ListProducts(ctx context.Context, activeOnly bool, limit int) ([]*models.Product, error) {
	const op = "service.ProductService.ListProducts"

	if limit <= 0 || limit > maxProductLimit {
		limit = maxProductLimit
	}
	products, err := s.productRepo.ListProducts(ctx, activeOnly, limit)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	const op = "service.ProductService.CreateProduct"
	logger := s.log.With(slog.String("op", op))

	if strings.TrimSpace(p.Name) == "" {
		return nil, NewValidationError("name is required")
	}
	if p.Price <= 0 {
		return nil, NewValidationError("price must be positive")
	}

	product, err := s.productRepo.CreateProduct(ctx, p)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("product created", slog.String("productID", product.ID))
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, patch *storage.ProductPatch) error {
	const op = "service.ProductService.UpdateProduct"
	logger := s.log.With(slog.String("op", op), slog.String("productID", id))

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return NewValidationError("name is required")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return NewValidationError("price must be positive")
	}

	if err := s.productRepo.UpdateProduct(ctx, id, patch); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return NewNotFoundError("product not found")
		}
		logger.Error("failed to update product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	const op = "service.ProductService.DeleteProduct"

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return NewNotFoundError("product not found")
		}
		s.log.Error("failed to delete product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CategoryService — категории каталога с кэшем чтения.
type CategoryService interface {
	// ListCategories читает категории через кэш с TTL; по истечении TTL
	// выполняется синхронный рефилл из хранилища.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
}

// categoryCache — явное состояние кэша, а не глобальная переменная.
// Рефилл идемпотентен, гонка приводит максимум к лишнему запросу в БД.
type categoryCache struct {
	mu            sync.RWMutex
	data          []*models.Category
	lastRefreshed time.Time
	ttl           time.Duration
}

func (c *categoryCache) get() ([]*models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil || time.Since(c.lastRefreshed) > c.ttl {
		return nil, false
	}
	return c.data, true
}

func (c *categoryCache) set(data []*models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.lastRefreshed = time.Now()
}

// invalidate сбрасывает кэш немедленно, не дожидаясь истечения TTL
func (c *categoryCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
}

type categoryService struct {
	log          *slog.Logger
	categoryRepo storage.CategoryStorage
	cache        *categoryCache
}

// NewCategoryService создаёт сервис категорий с кэшем на ttl (по умолчанию 5 минут).
func NewCategoryService(log *slog.Logger, categoryRepo storage.CategoryStorage, ttl time.Duration) CategoryService {
	return &categoryService{
		log:          log,
		categoryRepo: categoryRepo,
		cache:        &categoryCache{ttl: ttl},
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CategoryService.ListCategories"

	if cached, ok := s.cache.get(); ok {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cache.set(categories)
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	const op = "service.CategoryService.CreateCategory"
	logger := s.log.With(slog.String("op", op))

	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name is required")
	}

	category, err := s.categoryRepo.CreateCategory(ctx, &models.Category{Name: name})
	if err != nil {
		if errors.Is(err, storage.ErrCategoryExists) {
			return nil, NewConflictError("category already exists")
		}
		logger.Error("failed to create category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Запись инвалидирует кэш сразу, не дожидаясь TTL
	s.cache.invalidate()
	logger.Info("category created", slog.String("categoryID", category.ID))
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id, name string) error {
	const op = "service.CategoryService.UpdateCategory"

	if strings.TrimSpace(name) == "" {
		return NewValidationError("name is required")
	}

	if err := s.categoryRepo.UpdateCategory(ctx, id, name); err != nil {
		if errors.Is(err, storage.ErrCategoryExists) {
			return NewConflictError("category already exists")
		}
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return NewNotFoundError("category not found")
		}
		s.log.Error("failed to update category", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.invalidate()
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	const op = "service.CategoryService.DeleteCategory"

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return NewNotFoundError("category not found")
		}
		s.log.Error("failed to delete category", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.invalidate()
	return nil
}
