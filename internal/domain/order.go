package domain

import "time"

// Order statuses as the backend stores them. The API accepts arbitrary
// transitions; the admin timeline only ever moves forward.
const (
	OrderStatusReceived  = "received"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID         int64       `json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   *int64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// NextStatus returns the forward-only successor of a status, or the status
// itself when it is terminal or unknown.
func NextStatus(status string) string {
	switch status {
	case OrderStatusReceived:
		return OrderStatusPaid
	case OrderStatusPaid:
		return OrderStatusCompleted
	}
	return status
}
