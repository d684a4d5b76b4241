package models

import (
	"time"

	"github.com/google/uuid"
)

// order status
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is order entity
type Order struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	OrderDate      time.Time
	TotalAmount    float64
	BonusesEarned  float64
	BonusesUsed    float64
	Status         string
	Notes          string
	IsSocial       bool
	TableNumber    *int
	IdempotencyKey string
}

// BalanceDelta is the net change the order applies to the loyalty
// balance: earned bonuses are credited, redeemed bonuses are debited.
func (o *Order) BalanceDelta() float64 {
	return o.BonusesEarned - o.BonusesUsed
}

// ActiveStatus reports whether status keeps a table occupied.
func ActiveStatus(status string) bool {
	return status == OrderStatusPending || status == OrderStatusConfirmed
}

// ValidStatus reports whether status is a known order status.
func ValidStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
