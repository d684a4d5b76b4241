package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/repository/postgres"
)

const (
	insertUserQuery = `
						INSERT INTO users (user_id, username, password_hash, role, email)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING user_id, username, password_hash, role, email, created_at
`
	selectUserByUsernameQuery = `
						SELECT user_id, username, password_hash, role, email, created_at FROM users
						WHERE username = $1
`
	selectUserByIDQuery = `
						SELECT user_id, username, password_hash, role, email, created_at FROM users
						WHERE user_id = $1
`
	selectUsersQuery = `
						SELECT user_id, username, password_hash, role, email, created_at FROM users
						ORDER BY username
`
	updateUserQuery = `
						UPDATE users
						SET username = $1, password_hash = $2, role = $3, email = $4
						WHERE user_id = $5
`
	deleteUserQuery = `
						DELETE FROM users WHERE user_id = $1
`
)

// UserRepository implements UserRepository interface
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new user repository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts new user to database
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := ur.db.QueryRow(ctx, insertUserQuery, user.ID, user.Username, user.PasswordHash, user.Role, user.Email).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Email, &user.CreatedAt)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return user, nil
}

// GetUserByUsername returns user by username
func (ur *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	err := ur.db.QueryRow(ctx, selectUserByUsernameQuery, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	err := ur.db.QueryRow(ctx, selectUserByIDQuery, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUsers returns all users
func (ur *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := ur.db.Query(ctx, selectUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}

	for rows.Next() {
		user := models.User{}
		err = rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Email, &user.CreatedAt)
		if err != nil {
			continue
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser updates user attributes
func (ur *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	cmd, err := ur.db.Exec(ctx, updateUserQuery, user.Username, user.PasswordHash, user.Role, user.Email, user.ID)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteUser deletes user by id
func (ur *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	cmd, err := ur.db.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
