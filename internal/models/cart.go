package models

import "github.com/google/uuid"

// CartLine is one unordered cart position of a user.
// Ordered flips to true once the line is consumed by an order.
type CartLine struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	ItemID   uuid.UUID
	Quantity int
	Subtotal float64
	Ordered  bool
}
