package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CounterStorage описывает доступ к счётчику порядковых номеров заказов.
// Счётчик изменяется только внутри транзакции выдачи номера.
type CounterStorage interface {
	// NextOrderNumberTx читает текущее значение счётчика с блокировкой,
	// увеличивает его на единицу и возвращает новое значение.
	// Обязан вызываться внутри транзакции, в которой создаётся и сам заказ.
	NextOrderNumberTx(ctx context.Context, tx *sql.Tx) (int64, error)
	// CurrentOrderNumber возвращает последний выданный номер без транзакции.
	// Только для диагностики, для выдачи номеров не используется.
	CurrentOrderNumber(ctx context.Context) (int64, error)
}

type counterRepository struct {
	db *sql.DB
}

// NewCounterRepository создаёт репозиторий счётчика заказов.
func NewCounterRepository(db *sql.DB) CounterStorage {
	return &counterRepository{db: db}
}

func (r *counterRepository) NextOrderNumberTx(ctx context.Context, tx *sql.Tx) (int64, error) {
	var current int64
	row := tx.QueryRowContext(ctx, "SELECT last_number FROM order_counter WHERE id = 1 FOR UPDATE")
	if err := row.Scan(&current); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("failed to read order counter: %w", err)
		}
		// Строка счётчика сеется миграцией; отсутствие трактуем как 0
		current = 0
		if _, err := tx.ExecContext(ctx, "INSERT INTO order_counter (id, last_number) VALUES (1, 0)"); err != nil {
			return 0, fmt.Errorf("failed to seed order counter: %w", err)
		}
	}

	next := current + 1
	if _, err := tx.ExecContext(ctx, "UPDATE order_counter SET last_number = $1 WHERE id = 1", next); err != nil {
		return 0, fmt.Errorf("failed to advance order counter: %w", err)
	}
	return next, nil
}

func (r *counterRepository) CurrentOrderNumber(ctx context.Context) (int64, error) {
	var current int64
	row := r.db.QueryRowContext(ctx, "SELECT last_number FROM order_counter WHERE id = 1")
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return current, nil
}
