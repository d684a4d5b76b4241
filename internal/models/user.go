package models

import (
	"time"

	"github.com/google/uuid"
)

// user roles
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User is user entity
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	Email        string
	CreatedAt    time.Time
}

// TokenPayload is payload of auth token
type TokenPayload struct {
	UserID   uuid.UUID
	Username string
	Role     string
}
