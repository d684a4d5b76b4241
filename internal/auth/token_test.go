package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velnyk/cafepos/internal/models"
)

func TestAuthToken_RoundTrip(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))

	user := &models.User{
		ID:       uuid.New(),
		Username: "barista",
		Role:     models.RoleAdmin,
	}

	tokenString, err := at.CreateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	payload, err := at.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
	assert.Equal(t, user.Username, payload.Username)
	assert.Equal(t, user.Role, payload.Role)
}

func TestAuthToken_WrongKey(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))
	other := NewAuthToken([]byte("fedcba9876543210"))

	tokenString, err := at.CreateToken(&models.User{ID: uuid.New(), Username: "guest"})
	require.NoError(t, err)

	_, err = other.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestAuthToken_Garbage(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))

	_, err := at.VerifyToken("not.a.token")
	assert.Error(t, err)
}
