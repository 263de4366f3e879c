package models

import "time"

// NotificationTypeOrder — тип уведомления о заказе
const NotificationTypeOrder = "order"

// Notification представляет запись уведомления пользователя.
// Создаётся диспетчером при смене статуса заказа, ядро её не удаляет.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Type      string    `json:"type"`
	OrderID   string    `json:"orderId"`
	Status    Status    `json:"status"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
