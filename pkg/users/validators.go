package users

import (
	"time"

	"github.com/libooktrac/libooktrac/pkg/models"
)

type ListUsersQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

// CreateUserPayload is the registration request body. It exists apart from
// the draft so the plaintext password can be bound from JSON while the draft
// keeps it out of every serialized form.
type CreateUserPayload struct {
	FirstName   string              `json:"first_name" validate:"required,max=100"`
	LastName    string              `json:"last_name" validate:"required,max=100"`
	PhoneNumber string              `json:"phone_number" validate:"required,phone"`
	DateOfBirth time.Time           `json:"date_of_birth"`
	Address     string              `json:"address" validate:"required,max=200"`
	Email       string              `json:"email" validate:"required,email"`
	Username    string              `json:"username" validate:"required,min=3,max=30"`
	Password    string              `json:"password" validate:"required"`
	Category    models.UserCategory `json:"user_category" validate:"required"`
}

func (p CreateUserPayload) draft() models.UserDraft {
	return models.UserDraft{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
		DateOfBirth: p.DateOfBirth,
		Address:     p.Address,
		Email:       p.Email,
		Username:    p.Username,
		Password:    p.Password,
		Category:    p.Category,
	}
}

// UpdateUserPayload carries a partial update. A nil field leaves the stored
// value alone; the merged result is re-validated as a whole.
type UpdateUserPayload struct {
	FirstName   *string              `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName    *string              `json:"last_name,omitempty" validate:"omitempty,max=100"`
	PhoneNumber *string              `json:"phone_number,omitempty" validate:"omitempty,phone"`
	DateOfBirth *time.Time           `json:"date_of_birth,omitempty"`
	Address     *string              `json:"address,omitempty" validate:"omitempty,max=200"`
	Email       *string              `json:"email,omitempty" validate:"omitempty,email"`
	Username    *string              `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Category    *models.UserCategory `json:"user_category,omitempty"`
}

func (p UpdateUserPayload) apply(draft *models.UserDraft) {
	if p.FirstName != nil {
		draft.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		draft.LastName = *p.LastName
	}
	if p.PhoneNumber != nil {
		draft.PhoneNumber = *p.PhoneNumber
	}
	if p.DateOfBirth != nil {
		draft.DateOfBirth = *p.DateOfBirth
	}
	if p.Address != nil {
		draft.Address = *p.Address
	}
	if p.Email != nil {
		draft.Email = *p.Email
	}
	if p.Username != nil {
		draft.Username = *p.Username
	}
	if p.Category != nil {
		draft.Category = *p.Category
	}
}

// ResetPasswordPayload carries the replacement password.
type ResetPasswordPayload struct {
	Password string `json:"password" validate:"required"`
}

// VerifyPasswordPayload carries a candidate password to check.
type VerifyPasswordPayload struct {
	Password string `json:"password" validate:"required"`
}
