package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder вставляет новый заказ. Если order.ID пустой, идентификатор
	// генерируется на стороне БД. Возвращает заказ с заполненным ID.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// CreateOrderTx вставляет заказ внутри уже открытой транзакции
	// (используется выдачей порядковых номеров, ID обязан быть задан).
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	// GetOrderByID возвращает заказ по идентификатору.
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// ListOrders возвращает заказы пользователя; пустой userID — все заказы.
	ListOrders(ctx context.Context, userID string) ([]*models.Order, error)
	// ListRecent возвращает limit последних заказов по времени создания.
	ListRecent(ctx context.Context, limit int) ([]*models.Order, error)
	// UpdateOrder сохраняет изменяемые поля заказа (merge уже сделан сервисом).
	UpdateOrder(ctx context.Context, order *models.Order) error
	// DeleteOrder удаляет заказ без soft-delete.
	DeleteOrder(ctx context.Context, id string) error
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = "id, user_id, items, total_amount, delivery_location, status, created_at, updated_at"

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	// Пустой id заменяется сгенерированным на стороне БД
	query := `INSERT INTO orders (id, user_id, items, total_amount, delivery_location, status, created_at, updated_at)
	          VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		order.ID, order.UserID, items, order.TotalAmount, order.DeliveryLocation, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (id, user_id, items, total_amount, delivery_location, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	if _, err := tx.ExecContext(ctx, query,
		order.ID, order.UserID, items, order.TotalAmount, order.DeliveryLocation, order.Status,
	); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders"
	args := []any{}
	if userID != "" {
		query += " WHERE user_id = $1"
		args = append(args, userID)
	}
	query += " ORDER BY created_at DESC"

	return r.queryOrders(ctx, query, args...)
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC LIMIT $1"
	return r.queryOrders(ctx, query, limit)
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `UPDATE orders
	          SET items = $1, total_amount = $2, delivery_location = $3, status = $4, updated_at = NOW()
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, items, order.TotalAmount, order.DeliveryLocation, order.Status, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var items []byte
	if err := row.Scan(&order.ID, &order.UserID, &items, &order.TotalAmount,
		&order.DeliveryLocation, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return order, nil
}
