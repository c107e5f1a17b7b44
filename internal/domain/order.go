package domain

import "time"

// Order statuses as persisted. Transitions between them are unconstrained;
// only membership in this set is validated.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

var orderStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusPreparing: {},
	StatusShipped:   {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is one of the enumerated order statuses.
func ValidStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

// Order is immutable once created except for Status.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Lines      []OrderLine `json:"products"`
	TotalCents int64       `json:"totalCents"`
	Status     string      `json:"status"`
	OrderDate  time.Time   `json:"orderDate"`
}

type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
