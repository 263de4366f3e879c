package models

// Вид изменения в ленте заказов
const (
	EventNewOrder    = "new_order"
	EventOrderUpdate = "order_update"
)

// OrderEvent — событие живой ленты заказов для админских дашбордов.
// Формируется триггером в БД и доставляется через LISTEN/NOTIFY.
type OrderEvent struct {
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
	Status      Status  `json:"status"`
	Timestamp   int64   `json:"timestamp"`
	Kind        string  `json:"kind"`
}
