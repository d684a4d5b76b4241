package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByUsername returns user by username
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetUsers returns all users
	GetUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser updates user attributes
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser deletes user by id
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// TokenService issues and verifies auth tokens
type TokenService interface {
	CreateToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}

// UserService implements UserService interface
type UserService struct {
	repo UserRepository
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register validates credentials and creates a new customer account
func (us *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	var reasons []string
	if !validation.ValidateUsername(username) {
		reasons = append(reasons, "username is required")
	}
	if !validation.ValidatePassword(password) {
		reasons = append(reasons, "password must be 6-20 characters and contain a digit, a lower and an upper case letter")
	}
	if !validation.ValidateEmail(email) {
		reasons = append(reasons, "email is invalid")
	}
	if len(reasons) > 0 {
		return nil, models.NewValidationError("user", reasons)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Email:        email,
	}

	return us.repo.CreateUser(ctx, user)
}

// ListUsers returns all users
func (us *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return us.repo.GetUsers(ctx)
}

// UpdateUser updates role and email of an existing user
func (us *UserService) UpdateUser(ctx context.Context, id uuid.UUID, role, email string) (*models.User, error) {
	var reasons []string
	if role != models.RoleCustomer && role != models.RoleAdmin {
		reasons = append(reasons, "role is unknown")
	}
	if !validation.ValidateEmail(email) {
		reasons = append(reasons, "email is invalid")
	}
	if len(reasons) > 0 {
		return nil, models.NewValidationError("user", reasons)
	}

	user, err := us.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	user.Email = email

	if err := us.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes user by id
func (us *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return us.repo.DeleteUser(ctx, id)
}
