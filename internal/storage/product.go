package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage описывает методы для работы с каталогом товаров.
type ProductStorage interface {
	ListProducts(ctx context.Context, activeOnly bool, limit int) ([]*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	// UpdateProduct применяет частичное обновление: nil-поля не трогаются.
	UpdateProduct(ctx context.Context, id string, patch *ProductPatch) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductPatch — частичное обновление товара
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Description *string  `json:"description,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, name, price, COALESCE(category, ''), COALESCE(image_url, ''), COALESCE(description, ''), in_stock, is_active, created_at"

func (r *productRepository) ListProducts(ctx context.Context, activeOnly bool, limit int) ([]*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY created_at DESC LIMIT $1"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.ImageURL,
			&p.Description, &p.InStock, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (name, price, category, image_url, description, in_stock, is_active, created_at)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, NOW())
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Category, p.ImageURL, p.Description, p.InStock, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id string, patch *ProductPatch) error {
	query := `UPDATE products
	          SET name        = COALESCE($1, name),
	              price       = COALESCE($2, price),
	              category    = COALESCE($3, category),
	              image_url   = COALESCE($4, image_url),
	              description = COALESCE($5, description),
	              in_stock    = COALESCE($6, in_stock),
	              is_active   = COALESCE($7, is_active)
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		patch.Name, patch.Price, patch.Category, patch.ImageURL,
		patch.Description, patch.InStock, patch.IsActive, id)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
