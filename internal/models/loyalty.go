package models

import (
	"time"

	"github.com/google/uuid"
)

// bonus transaction types
const (
	BonusEarned   = "EARNED"
	BonusRedeemed = "REDEEMED"
)

// LoyaltyCard is loyalty card entity. At most one card per user.
type LoyaltyCard struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CardNumber string
	Balance    float64
	Active     bool
	CreatedAt  time.Time
}

// BonusTransaction is one ledger entry of a loyalty card balance change.
type BonusTransaction struct {
	ID              uuid.UUID
	CardID          uuid.UUID
	OrderID         *uuid.UUID
	Amount          float64
	Type            string
	TransactionDate time.Time
	Notes           string
}
