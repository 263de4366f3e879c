package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// OrderService определяет операции жизненного цикла заказа.
type OrderService interface {
	// CreateOrder создаёт заказ со статусом PENDING. Если req.ID пуст,
	// идентификатор генерирует хранилище.
	CreateOrder(ctx context.Context, userID string, req *models.Order) (*models.Order, error)
	// GetOrder возвращает заказ. Для не-админа чужой заказ неотличим от отсутствующего.
	GetOrder(ctx context.Context, orderID, requesterID string, isAdmin bool) (*models.Order, error)
	// ListOrders возвращает заказы пользователя; пустой userID (только админ) — все.
	ListOrders(ctx context.Context, userID string) ([]*models.Order, error)
	// ListRecent возвращает limit последних заказов (polling fallback ленты).
	ListRecent(ctx context.Context, limit int) ([]*models.Order, error)
	// UpdateOrder применяет частичное обновление. Смена статуса админом —
	// событие перехода: после записи создаётся уведомление владельцу.
	UpdateOrder(ctx context.Context, orderID, requesterID string, patch *models.OrderPatch, isAdmin bool) (*models.Order, error)
	// DeleteOrder удаляет заказ (жёстко, без soft-delete).
	DeleteOrder(ctx context.Context, orderID, requesterID string, isAdmin bool) error
}

// Notifier — контракт диспетчера уведомлений. Ошибки доставки не возвращаются:
// результат операции над заказом не зависит от доставки уведомления.
type Notifier interface {
	Notify(ctx context.Context, userID, orderID string, status models.Status, title, body string)
	NotifyAdminsNewOrder(ctx context.Context, orderID string, totalAmount float64)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	notifier  Notifier
}

// NewOrderService создаёт сервис жизненного цикла заказов.
func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage, notifier Notifier) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// ValidateOrderPayload проверяет поля нового заказа по правилам создания.
// Возвращает ValidationError с указанием конкретного поля.
func ValidateOrderPayload(order *models.Order) error {
	if len(order.Items) == 0 {
		return NewValidationError("items are required")
	}
	for i, item := range order.Items {
		if err := validateItem(i, item); err != nil {
			return err
		}
	}
	if order.TotalAmount <= 0 {
		return NewValidationError("totalAmount must be positive")
	}
	if strings.TrimSpace(order.DeliveryLocation) == "" {
		return NewValidationError("deliveryLocation is required")
	}
	return nil
}

func validateItem(i int, item models.OrderItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return NewValidationError(fmt.Sprintf("items[%d].productId is required", i))
	}
	if strings.TrimSpace(item.Name) == "" {
		return NewValidationError(fmt.Sprintf("items[%d].name is required", i))
	}
	if item.Quantity <= 0 {
		return NewValidationError(fmt.Sprintf("items[%d].quantity must be positive", i))
	}
	if item.Price <= 0 {
		return NewValidationError(fmt.Sprintf("items[%d].price must be positive", i))
	}
	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req *models.Order) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	if err := ValidateOrderPayload(req); err != nil {
		logger.Warn("order payload rejected", slog.Any("error", err))
		return nil, err
	}

	req.UserID = userID
	req.Status = models.StatusPending

	order, err := s.orderRepo.CreateOrder(ctx, req)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	logger.Info("order created", slog.String("orderID", order.ID))
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID, requesterID string, isAdmin bool) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.loadOwned(ctx, orderID, requesterID, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.ListOrders(ctx, userID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list orders: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) ListRecent(ctx context.Context, limit int) ([]*models.Order, error) {
	const op = "service.OrderService.ListRecent"

	orders, err := s.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		s.log.Error("failed to list recent orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list recent orders: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID, requesterID string, patch *models.OrderPatch, isAdmin bool) (*models.Order, error) {
	const op = "service.OrderService.UpdateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))

	order, err := s.loadOwned(ctx, orderID, requesterID, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Проверяем только присутствующие в патче поля, теми же правилами, что при создании
	if patch.Items != nil {
		if len(patch.Items) == 0 {
			return nil, NewValidationError("items are required")
		}
		for i, item := range patch.Items {
			if err := validateItem(i, item); err != nil {
				return nil, err
			}
		}
	}
	if patch.TotalAmount != nil && *patch.TotalAmount <= 0 {
		return nil, NewValidationError("totalAmount must be positive")
	}
	if patch.DeliveryLocation != nil && strings.TrimSpace(*patch.DeliveryLocation) == "" {
		return nil, NewValidationError("deliveryLocation is required")
	}
	if patch.Status != nil {
		next := *patch.Status
		if !next.IsValid() {
			return nil, NewValidationError("invalid status: " + string(next))
		}
		if !order.Status.CanTransitionTo(next) {
			return nil, NewValidationError(fmt.Sprintf("status transition %s -> %s is not allowed", order.Status, next))
		}
	}

	// Частичный merge: отсутствующие поля не трогаем
	if patch.Items != nil {
		order.Items = patch.Items
	}
	if patch.TotalAmount != nil {
		order.TotalAmount = *patch.TotalAmount
	}
	if patch.DeliveryLocation != nil {
		order.DeliveryLocation = *patch.DeliveryLocation
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, fmt.Errorf("%s: %w", op, NewNotFoundError("order not found"))
		}
		logger.Error("failed to update order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update order: %w", op, err)
	}

	// Смена статуса админом — событие перехода: уведомляем владельца.
	// Обновления самим пользователем уведомлений не порождают.
	if isAdmin && patch.Status != nil {
		status := *patch.Status
		s.notifier.Notify(ctx, order.UserID, order.ID, status, "Order Update", status.Message())
	}

	logger.Info("order updated", slog.String("status", string(order.Status)))
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID, requesterID string, isAdmin bool) error {
	const op = "service.OrderService.DeleteOrder"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))

	if _, err := s.loadOwned(ctx, orderID, requesterID, isAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return fmt.Errorf("%s: %w", op, NewNotFoundError("order not found"))
		}
		logger.Error("failed to delete order", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete order: %w", op, err)
	}

	logger.Info("order deleted")
	return nil
}

// loadOwned загружает заказ с проверкой владения: для не-админа чужой
// или отсутствующий заказ — одинаковый NotFound
func (s *orderService) loadOwned(ctx context.Context, orderID, requesterID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, NewNotFoundError("order not found")
		}
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, NewNotFoundError("order not found")
	}
	return order, nil
}
