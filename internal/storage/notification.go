package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationStorage описывает методы для работы с уведомлениями.
type NotificationStorage interface {
	// CreateNotification сохраняет запись уведомления и возвращает её id.
	CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error)
	// GetNotificationsByUserID возвращает уведомления пользователя, новые первыми.
	GetNotificationsByUserID(ctx context.Context, userID string) ([]*models.Notification, error)
	// MarkRead помечает уведомление прочитанным.
	MarkRead(ctx context.Context, id int64, userID string) error
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository создаёт новый репозиторий уведомлений.
func NewNotificationRepository(db *sql.DB) NotificationStorage {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	query := `INSERT INTO notifications (user_id, title, body, type, order_id, status, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		n.UserID, n.Title, n.Body, n.Type, n.OrderID, n.Status,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

func (r *notificationRepository) GetNotificationsByUserID(ctx context.Context, userID string) ([]*models.Notification, error) {
	query := `SELECT id, user_id, title, body, type, order_id, status, is_read, created_at
	          FROM notifications
	          WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Type,
			&n.OrderID, &n.Status, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
