package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// Префикс человекочитаемых номеров заказов: ORD1, ORD2, ... без паддинга
const orderIDPrefix = "ORD"

// Число попыток транзакции выдачи номера при конфликтах
const maxAllocRetries = 5

// SubmitResult — результат создания заказа с порядковым номером.
type SubmitResult struct {
	OrderID     string
	OrderNumber int64
}

// SubmitService выдаёт строго возрастающие номера заказов и создаёт заказ
// в той же транзакции, что и инкремент счётчика.
type SubmitService interface {
	Submit(ctx context.Context, userID string, order *models.Order) (*SubmitResult, error)
}

type submitService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	counterRepo storage.CounterStorage
	notifier    Notifier
}

// NewSubmitService создаёт сервис выдачи порядковых номеров заказов.
func NewSubmitService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, counterRepo storage.CounterStorage, notifier Notifier) SubmitService {
	return &submitService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		counterRepo: counterRepo,
		notifier:    notifier,
	}
}

// Submit выполняет транзакцию: чтение счётчика с блокировкой, инкремент,
// вставка заказа с идентификатором ORD<n>. Конфликтующая транзакция
// повторяется целиком; частично применённая выдача наблюдаться не может —
// обе записи находятся в одной транзакции.
func (s *submitService) Submit(ctx context.Context, userID string, order *models.Order) (*SubmitResult, error) {
	const op = "service.SubmitService.Submit"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	if err := ValidateOrderPayload(order); err != nil {
		logger.Warn("order payload rejected", slog.Any("error", err))
		return nil, err
	}

	order.UserID = userID
	order.Status = models.StatusPending

	var result *SubmitResult
	var lastErr error
	for attempt := 1; attempt <= maxAllocRetries; attempt++ {
		result, lastErr = s.trySubmit(ctx, order)
		if lastErr == nil {
			break
		}
		if !isRetryableTxError(lastErr) {
			logger.Error("order submit failed", slog.Any("error", lastErr))
			return nil, fmt.Errorf("%s: %w", op, lastErr)
		}
		logger.Warn("allocation conflict, retrying", slog.Int("attempt", attempt), slog.Any("error", lastErr))
	}
	if lastErr != nil {
		logger.Error("allocation retries exhausted", slog.Any("error", lastErr))
		return nil, fmt.Errorf("%s: allocation retries exhausted: %w", op, lastErr)
	}

	logger.Info("order submitted", slog.String("orderID", result.OrderID), slog.Int64("orderNumber", result.OrderNumber))

	// Алерты админам о новом заказе — best-effort, после коммита
	s.notifier.NotifyAdminsNewOrder(ctx, result.OrderID, order.TotalAmount)

	return result, nil
}

// trySubmit — одна попытка транзакции: инкремент счётчика + вставка заказа
func (s *submitService) trySubmit(ctx context.Context, order *models.Order) (*SubmitResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	number, err := s.counterRepo.NextOrderNumberTx(ctx, tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		return nil, err
	}

	order.ID = fmt.Sprintf("%s%d", orderIDPrefix, number)
	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &SubmitResult{OrderID: order.ID, OrderNumber: number}, nil
}

// isRetryableTxError — конфликты, при которых транзакцию можно повторить:
// 40001 serialization_failure, 40P01 deadlock_detected, 55P03 lock_not_available
func isRetryableTxError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}
