package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/push"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// NotificationService — диспетчер уведомлений плюс лента уведомлений
// пользователя.
type NotificationService interface {
	Notifier
	ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64, userID string) error
}

// notificationService — диспетчер уведомлений. Запись уведомления создаётся
// всегда, доставка через push — best-effort: любая ошибка логируется и
// гасится, чтобы не откатить вызвавшую операцию над заказом.
type notificationService struct {
	log       *slog.Logger
	notifRepo storage.NotificationStorage
	userRepo  storage.UserStorage
	adminRepo storage.AdminStorage
	sender    push.Sender
}

// NewNotificationService создаёт диспетчер уведомлений.
func NewNotificationService(log *slog.Logger, notifRepo storage.NotificationStorage, userRepo storage.UserStorage, adminRepo storage.AdminStorage, sender push.Sender) NotificationService {
	return &notificationService{
		log:       log,
		notifRepo: notifRepo,
		userRepo:  userRepo,
		adminRepo: adminRepo,
		sender:    sender,
	}
}

// Notify сохраняет уведомление и отправляет push владельцу заказа.
func (s *notificationService) Notify(ctx context.Context, userID, orderID string, status models.Status, title, body string) {
	const op = "service.NotificationService.Notify"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID), slog.String("orderID", orderID))

	// Сначала durable-запись
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Body:    body,
		Type:    models.NotificationTypeOrder,
		OrderID: orderID,
		Status:  status,
	}
	if _, err := s.notifRepo.CreateNotification(ctx, notification); err != nil {
		logger.Error("failed to persist notification", slog.Any("error", err))
		return
	}

	token, err := s.userRepo.GetFCMToken(ctx, userID)
	if err != nil {
		logger.Warn("failed to look up fcm token", slog.Any("error", err))
		return
	}
	if token == "" {
		logger.Info("no device token registered, skipping push")
		return
	}

	msg := &push.Message{
		Token:        token,
		Title:        title,
		Body:         body,
		HighPriority: true,
		Data: map[string]string{
			"type":    models.NotificationTypeOrder,
			"orderId": orderID,
			"status":  string(status),
		},
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		// Ошибка доставки никогда не поднимается к вызывающему
		logger.Warn("push delivery failed", slog.Any("error", err))
	}
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *notificationService) ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	const op = "service.NotificationService.ListNotifications"

	notifications, err := s.notifRepo.GetNotificationsByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to list notifications", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notifications, nil
}

// MarkNotificationRead помечает уведомление прочитанным. Чужое или
// несуществующее уведомление — NotFound, владельца не раскрываем.
func (s *notificationService) MarkNotificationRead(ctx context.Context, id int64, userID string) error {
	const op = "service.NotificationService.MarkNotificationRead"

	if err := s.notifRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotificationNotFound) {
			return NewNotFoundError("notification not found")
		}
		s.log.Error("failed to mark notification read", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NotifyAdminsNewOrder рассылает алерт о новом заказе всем администраторам
// с зарегистрированными push-токенами. Семантика та же: best-effort.
func (s *notificationService) NotifyAdminsNewOrder(ctx context.Context, orderID string, totalAmount float64) {
	const op = "service.NotificationService.NotifyAdminsNewOrder"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))

	admins, err := s.adminRepo.ListAdminsWithTokens(ctx)
	if err != nil {
		logger.Warn("failed to list admins", slog.Any("error", err))
		return
	}

	for _, admin := range admins {
		msg := &push.Message{
			Token:        admin.FCMToken,
			Title:        "New Order",
			Body:         fmt.Sprintf("Order %s received, total %.2f", orderID, totalAmount),
			HighPriority: true,
			Data: map[string]string{
				"type":    "new_order",
				"orderId": orderID,
			},
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			logger.Warn("admin alert delivery failed", slog.String("adminID", admin.ID), slog.Any("error", err))
		}
	}
}
