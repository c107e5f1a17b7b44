package domain

import "time"

// Cart is owned 1:1 by a user; it exists only between the first add and the
// checkout that empties it.
type Cart struct {
	UserID string     `json:"userId"`
	Lines  []CartLine `json:"lines"`
}

type CartLine struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartView is a cart joined with live product data plus derived totals.
type CartView struct {
	Items         []CartItemView `json:"cart"`
	TotalQuantity int            `json:"totalQuantity"`
	TotalCents    int64          `json:"totalPriceCents"`
}

type CartItemView struct {
	Quantity int      `json:"quantity"`
	Product  *Product `json:"product"`
}
