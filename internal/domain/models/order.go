package models

import "time"

// Status — статус заказа, фиксированное перечисление
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING_ORDER"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusOnWay          Status = "ON_WAY"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusReturned       Status = "RETURNED"
)

// IsValid проверяет, что статус входит в перечисление
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusOnWay, StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// IsTerminal — из этих статусов дальнейших переходов нет
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusReturned
}

// transitions — допустимые переходы вперед по цепочке.
// CANCELLED и RETURNED достижимы из любого нетерминального статуса.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed},
	StatusConfirmed:      {StatusPreparing},
	StatusPreparing:      {StatusReadyForPickup, StatusOnWay, StatusOutForDelivery},
	StatusReadyForPickup: {StatusDelivered},
	StatusOnWay:          {StatusDelivered},
	StatusOutForDelivery: {StatusDelivered},
}

// CanTransitionTo проверяет допустимость перехода s -> next
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == StatusCancelled || next == StatusReturned {
		return true
	}
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// statusMessages — тексты уведомлений по статусам (используются дословно)
var statusMessages = map[Status]string{
	StatusPending:        "Your order is pending confirmation",
	StatusConfirmed:      "Your order has been confirmed!",
	StatusPreparing:      "Your order is being prepared",
	StatusReadyForPickup: "Your order is ready for pickup!",
	StatusOnWay:          "Your order is on the way!",
	StatusOutForDelivery: "Your order is on the way!",
	StatusDelivered:      "✨ Your order has been delivered!",
	StatusCancelled:      "Your order has been cancelled",
	StatusReturned:       "Your order has been returned",
}

// Message возвращает текст уведомления для статуса.
// Для неизвестного (но синтаксически корректного) значения — общий текст.
func (s Status) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return "Order status: " + string(s)
}

// OrderItem — позиция заказа
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order представляет заказ пользователя
type Order struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	Items            []OrderItem `json:"items"`
	TotalAmount      float64     `json:"totalAmount"`
	DeliveryLocation string      `json:"deliveryLocation"`
	Status           Status      `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// OrderPatch — частичное обновление заказа, nil-поля не трогаются
type OrderPatch struct {
	Items            []OrderItem `json:"items,omitempty"`
	TotalAmount      *float64    `json:"totalAmount,omitempty"`
	DeliveryLocation *string     `json:"deliveryLocation,omitempty"`
	Status           *Status     `json:"status,omitempty"`
}
