package users

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/libooktrac/libooktrac/pkg/auth"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/errcodes"
	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/libooktrac/libooktrac/pkg/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUsersCollection = "users"

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func newTestService() *Service {
	svc := NewService(database.NewMemoryStore(), testUsersCollection, reservation.NewSet())
	svc.now = func() time.Time { return testNow }
	return svc
}

func validDraft() models.UserDraft {
	return models.UserDraft{
		FirstName:   "maya",
		LastName:    "okafor",
		PhoneNumber: "(415) 555-2671",
		DateOfBirth: time.Date(2004, 3, 14, 0, 0, 0, 0, time.UTC),
		Address:     "12 Harbor Lane, Portsmouth",
		Email:       "maya@example.com",
		Username:    "MayaO",
		Password:    "ValidPass1!",
		Category:    models.CategoryStudent,
	}
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	draft := validDraft()
	user, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	// Normalized during validation.
	assert.Equal(t, "Maya", user.FirstName)
	assert.Equal(t, "Okafor", user.LastName)
	assert.Equal(t, "415-555-2671", user.PhoneNumber)
	assert.Equal(t, "mayao", user.Username)

	// New member defaults.
	assert.Equal(t, models.MembershipInactive, user.MembershipStatus)
	assert.Equal(t, 0, user.BorrowCount)
	assert.Equal(t, models.DefaultMaxBorrowLimit, user.MaxBorrowLimit)
	assert.Empty(t, user.BorrowHistory)
	assert.Zero(t, user.FinesOwed)
	assert.True(t, user.AccountActive)

	// The plaintext is hashed exactly once and never stored.
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "ValidPass1!", user.PasswordHash)
	assert.True(t, auth.CheckPassword("ValidPass1!", user.PasswordHash))
}

func TestCreateUser_AgeBoundary(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	// Exactly 13 today is accepted.
	draft := validDraft()
	draft.DateOfBirth = time.Date(2013, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	// One day younger is rejected on date_of_birth.
	younger := validDraft()
	younger.Username = "younger"
	younger.Email = "younger@example.com"
	younger.DateOfBirth = time.Date(2013, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateUser(ctx, &younger)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "rejected", codeErr.Code)
	assert.True(t, codeErr.Violations.Has("date_of_birth"))
}

func TestCreateUser_AggregatesPasswordViolations(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	draft := validDraft()
	draft.Password = "short"
	_, err := svc.CreateUser(ctx, &draft)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)

	messages := make([]string, 0, len(codeErr.Violations))
	for _, v := range codeErr.Violations {
		messages = append(messages, v.Message)
	}
	assert.Equal(t, []string{
		"Password must be at least 8 characters long",
		"Password must contain at least one uppercase letter",
		"Password must contain at least one special character",
	}, messages)

	// A rejected draft must not hold the username.
	assert.False(t, svc.usernames.Reserved("mayao"))
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	first := validDraft()
	user, err := svc.CreateUser(ctx, &first)
	require.NoError(t, err)

	// Different rendering, same canonical username.
	second := validDraft()
	second.Email = "other@example.com"
	second.Username = "mAYAo"
	_, err = svc.CreateUser(ctx, &second)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "duplicate_key", codeErr.Code)

	// Deleting the holder releases the username.
	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	third := validDraft()
	_, err = svc.CreateUser(ctx, &third)
	require.NoError(t, err)
}

func TestCreateUser_ConcurrentSameUsername(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			draft := validDraft()
			_, err := svc.CreateUser(ctx, &draft)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	draft := validDraft()
	user, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserPayload{
		Address:  ptr("99 New Street, Dover"),
		Username: ptr("MayaOkafor"),
	})
	require.NoError(t, err)
	assert.Equal(t, "99 New Street, Dover", updated.Address)
	assert.Equal(t, "mayaokafor", updated.Username)
	assert.Equal(t, later, updated.UpdatedAt)

	// The old username is claimable again, the new one is held.
	assert.False(t, svc.usernames.Reserved("mayao"))
	assert.True(t, svc.usernames.Reserved("mayaokafor"))

	stored, err := svc.RetrieveUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "mayaokafor", stored.Username)
	// The hash survives field updates untouched.
	assert.True(t, auth.CheckPassword("ValidPass1!", stored.PasswordHash))
}

func TestUpdateUser_RejectedMergeLeavesRecordUntouched(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	draft := validDraft()
	user, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, user.ID, UpdateUserPayload{
		PhoneNumber: ptr("123-456-7890"),
	})
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "rejected", codeErr.Code)
	assert.True(t, codeErr.Violations.Has("phone_number"))

	stored, err := svc.RetrieveUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "415-555-2671", stored.PhoneNumber)
	assert.Equal(t, user.UpdatedAt, stored.UpdatedAt)
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	draft := validDraft()
	user, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	// A weak replacement is rejected with the full set of failures.
	err = svc.ResetPassword(ctx, user.ID, "weakpass")
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "rejected", codeErr.Code)

	// The original password still works.
	valid, err := svc.VerifyPassword(ctx, user.ID, "ValidPass1!")
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, svc.ResetPassword(ctx, user.ID, "NewSecret2@"))

	valid, err = svc.VerifyPassword(ctx, user.ID, "NewSecret2@")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.VerifyPassword(ctx, user.ID, "ValidPass1!")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestDeleteUser_SecondDeleteReportsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	draft := validDraft()
	user, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	err = svc.DeleteUser(ctx, user.ID)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}

func TestWarmReservations(t *testing.T) {
	t.Parallel()

	store := database.NewMemoryStore()
	svc := NewService(store, testUsersCollection, reservation.NewSet())
	svc.now = func() time.Time { return testNow }
	ctx := context.Background()

	draft := validDraft()
	_, err := svc.CreateUser(ctx, &draft)
	require.NoError(t, err)

	restarted := NewService(store, testUsersCollection, reservation.NewSet())
	restarted.now = func() time.Time { return testNow }
	require.NoError(t, restarted.WarmReservations(ctx))
	assert.True(t, restarted.usernames.Reserved("mayao"))

	duplicate := validDraft()
	_, err = restarted.CreateUser(ctx, &duplicate)
	require.Error(t, err)
}
