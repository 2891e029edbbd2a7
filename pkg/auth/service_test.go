package auth

import (
	"context"
	"testing"
	"time"

	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/errcodes"
	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUsersCollection = "users"

func seedMember(ctx context.Context, t *testing.T, store database.Store, username, password string, active bool) *models.User {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := &models.User{
		ID:            "4c2c9a53-4b34-4c8a-9f6e-0d6a8a7e1b11",
		CreatedAt:     now,
		UpdatedAt:     now,
		FirstName:     "Maya",
		LastName:      "Okafor",
		Username:      username,
		Email:         "maya@example.com",
		Category:      models.CategoryStudent,
		PasswordHash:  hash,
		AccountActive: active,
	}
	_, err = store.Insert(ctx, testUsersCollection, user)
	require.NoError(t, err)
	return user
}

func TestServiceAuthenticate(t *testing.T) {
	t.Parallel()

	store := database.NewMemoryStore()
	svc := NewService(store, testUsersCollection, "test-secret")
	ctx := context.Background()

	seedMember(ctx, t, store, "mayao", "ValidPass1!", true)

	user, err := svc.Authenticate(ctx, "mayao", "ValidPass1!")
	require.NoError(t, err)
	assert.Equal(t, "mayao", user.Username)

	// Usernames are matched case-insensitively.
	user, err = svc.Authenticate(ctx, "MayaO", "ValidPass1!")
	require.NoError(t, err)
	assert.Equal(t, "mayao", user.Username)

	_, err = svc.Authenticate(ctx, "mayao", "WrongPass1!")
	require.Error(t, err)
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "unauthorized", codeErr.Code)

	_, err = svc.Authenticate(ctx, "ghost", "ValidPass1!")
	require.Error(t, err)
}

func TestServiceAuthenticate_InactiveAccount(t *testing.T) {
	t.Parallel()

	store := database.NewMemoryStore()
	svc := NewService(store, testUsersCollection, "test-secret")
	ctx := context.Background()

	seedMember(ctx, t, store, "dormant", "ValidPass1!", false)

	_, err := svc.Authenticate(ctx, "dormant", "ValidPass1!")
	require.Error(t, err)
}

func TestServiceTokenRoundTrip(t *testing.T) {
	t.Parallel()

	store := database.NewMemoryStore()
	svc := NewService(store, testUsersCollection, "test-secret")
	ctx := context.Background()

	user := seedMember(ctx, t, store, "mayao", "ValidPass1!", true)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "mayao", claims.Username)
	assert.Equal(t, string(models.CategoryStudent), claims.Category)

	// A token signed with a different secret is rejected.
	other := NewService(store, testUsersCollection, "other-secret")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestHashPasswordNeverReturnsPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("ValidPass1!")
	require.NoError(t, err)
	assert.NotEqual(t, "ValidPass1!", hash)
	assert.True(t, CheckPassword("ValidPass1!", hash))
	assert.False(t, CheckPassword("ValidPass2!", hash))
}
