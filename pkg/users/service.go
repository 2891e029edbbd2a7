package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/libooktrac/libooktrac/pkg/auth"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/errcodes"
	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/libooktrac/libooktrac/pkg/reservation"
	"github.com/libooktrac/libooktrac/pkg/validation"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const maxIDAttempts = 5

type ListUsersOptions struct {
	Limit  int
	Offset int
}

// Service handles member record operations.
type Service struct {
	store      database.Store
	collection string
	usernames  *reservation.Set

	now   func() time.Time
	newID func() string
}

// NewService creates a new users service.
func NewService(store database.Store, collection string, usernames *reservation.Set) *Service {
	return &Service{
		store:      store,
		collection: collection,
		usernames:  usernames,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WarmReservations claims every stored username so duplicate checks hold
// across restarts. Call once after the datastore is ready.
func (s *Service) WarmReservations(ctx context.Context) error {
	users := []*models.User{}
	err := s.store.Find(ctx, s.collection, database.Query{}, &users)
	if err != nil {
		return errors.WithStack(err)
	}
	for _, user := range users {
		s.usernames.Reserve(user.Username)
	}
	return nil
}

// CreateUser validates and normalizes the draft, claims the username, hashes
// the password exactly once, and persists a new member record. The plaintext
// never leaves this call.
func (s *Service) CreateUser(ctx context.Context, draft *models.UserDraft) (*models.User, error) {
	if violations := validation.User(draft, s.now(), true); len(violations) > 0 {
		return nil, errcodes.Rejected(violations)
	}

	// Claim the username before the insert so two concurrent registrations
	// can't both write it. Exactly one caller wins the claim.
	if !s.usernames.Reserve(draft.Username) {
		return nil, errcodes.Conflict("A user with this username already exists.")
	}

	user, err := s.insertUser(ctx, draft)
	if err != nil {
		s.usernames.Release(draft.Username)
	}
	return user, err
}

func (s *Service) insertUser(ctx context.Context, draft *models.UserDraft) (*models.User, error) {
	hash, err := auth.HashPassword(draft.Password)
	if err != nil {
		return nil, err
	}

	id, err := s.freshID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,

		FirstName:   draft.FirstName,
		LastName:    draft.LastName,
		PhoneNumber: draft.PhoneNumber,
		DateOfBirth: draft.DateOfBirth,
		Address:     draft.Address,
		Email:       draft.Email,
		Username:    draft.Username,
		Category:    draft.Category,

		PasswordHash: hash,

		MembershipStatus: models.MembershipInactive,
		BorrowCount:      0,
		MaxBorrowLimit:   models.DefaultMaxBorrowLimit,
		BorrowHistory:    []string{},
		FinesOwed:        0,
		AccountActive:    true,
	}

	if _, err := s.store.Insert(ctx, s.collection, user); err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

func (s *Service) RetrieveUser(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	found, err := s.store.FindOne(ctx, s.collection, database.Query{
		Exact: map[string]any{"_id": id},
	}, user)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !found {
		return nil, errcodes.NotFound("User")
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, opts ListUsersOptions) ([]*models.User, error) {
	users := []*models.User{}
	err := s.store.Find(ctx, s.collection, database.Query{
		Sort:   "created_at",
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}, &users)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return users, nil
}

// UpdateUser merges the patch into the stored record, re-runs the full
// validation pipeline on the merged draft, and persists only when the whole
// merge is acceptable. Passwords are not updatable here; see ResetPassword.
func (s *Service) UpdateUser(ctx context.Context, id string, patch UpdateUserPayload) (*models.User, error) {
	user, err := s.RetrieveUser(ctx, id)
	if err != nil {
		return nil, err
	}

	oldUsername := user.Username
	draft := user.Draft()
	patch.apply(&draft)

	if violations := validation.User(&draft, s.now(), false); len(violations) > 0 {
		return nil, errcodes.Rejected(violations)
	}

	changedUsername := draft.Username != oldUsername
	if changedUsername {
		if !s.usernames.Reserve(draft.Username) {
			return nil, errcodes.Conflict("A user with this username already exists.")
		}
	}

	user.FirstName = draft.FirstName
	user.LastName = draft.LastName
	user.PhoneNumber = draft.PhoneNumber
	user.DateOfBirth = draft.DateOfBirth
	user.Address = draft.Address
	user.Email = draft.Email
	user.Username = draft.Username
	user.Category = draft.Category
	user.UpdatedAt = s.now()

	ok, err := s.store.Update(ctx, s.collection, id, userFields(user))
	if err != nil || !ok {
		if changedUsername {
			s.usernames.Release(draft.Username)
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return nil, errcodes.NotFound("User")
	}

	if changedUsername {
		s.usernames.Release(oldUsername)
	}
	return user, nil
}

// DeleteUser removes the record and releases its username. Deleting a
// missing record reports NotFound.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.RetrieveUser(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.store.Delete(ctx, s.collection, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return errcodes.NotFound("User")
	}

	s.usernames.Release(user.Username)
	return nil
}

// ResetPassword replaces the stored hash. The new password runs through the
// full strength checks and is hashed exactly once.
func (s *Service) ResetPassword(ctx context.Context, id, password string) error {
	if _, err := s.RetrieveUser(ctx, id); err != nil {
		return err
	}

	if violations := validation.Password(password); len(violations) > 0 {
		return errcodes.Rejected(violations)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	ok, err := s.store.Update(ctx, s.collection, id, bson.M{
		"password_hash": hash,
		"updated_at":    s.now(),
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return errcodes.NotFound("User")
	}
	return nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (s *Service) VerifyPassword(ctx context.Context, id, password string) (bool, error) {
	user, err := s.RetrieveUser(ctx, id)
	if err != nil {
		return false, err
	}
	return auth.CheckPassword(password, user.PasswordHash), nil
}

func (s *Service) freshID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		existing := &models.User{}
		found, err := s.store.FindOne(ctx, s.collection, database.Query{
			Exact: map[string]any{"_id": id},
		}, existing)
		if err != nil {
			return "", errors.WithStack(err)
		}
		if !found {
			return id, nil
		}
	}
	return "", errors.New("exhausted attempts generating a unique user id")
}

// userFields lists the mutable fields explicitly so the update writes the
// merged record as a whole. The password hash is deliberately absent.
func userFields(user *models.User) bson.M {
	return bson.M{
		"updated_at":    user.UpdatedAt,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"phone_number":  user.PhoneNumber,
		"date_of_birth": user.DateOfBirth,
		"address":       user.Address,
		"email":         user.Email,
		"username":      user.Username,
		"user_category": user.Category,
	}
}
