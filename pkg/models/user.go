package models

import "time"

// DefaultMaxBorrowLimit is the borrow ceiling assigned to new members.
const DefaultMaxBorrowLimit = 5

// UserDraft is an untrusted member submission. Password carries the plaintext
// only for the duration of validation and hashing; it is never persisted.
type UserDraft struct {
	FirstName   string       `json:"first_name" bson:"first_name"`
	LastName    string       `json:"last_name" bson:"last_name"`
	PhoneNumber string       `json:"phone_number" bson:"phone_number"`
	DateOfBirth time.Time    `json:"date_of_birth" bson:"date_of_birth"`
	Address     string       `json:"address" bson:"address"`
	Email       string       `json:"email" bson:"email"`
	Username    string       `json:"username" bson:"username"`
	Password    string       `json:"-" bson:"-"`
	Category    UserCategory `json:"user_category" bson:"user_category"`
}

// User is an accepted member record.
type User struct {
	ID        string    `json:"user_id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	FirstName   string       `json:"first_name" bson:"first_name"`
	LastName    string       `json:"last_name" bson:"last_name"`
	PhoneNumber string       `json:"phone_number" bson:"phone_number"`
	DateOfBirth time.Time    `json:"date_of_birth" bson:"date_of_birth"`
	Address     string       `json:"address" bson:"address"`
	Email       string       `json:"email" bson:"email"`
	Username    string       `json:"username" bson:"username"`
	Category    UserCategory `json:"user_category" bson:"user_category"`

	// PasswordHash is the bcrypt digest; the plaintext is hashed exactly once
	// at creation or explicit password change and never stored or logged.
	PasswordHash string `json:"-" bson:"password_hash"`

	MembershipStatus MembershipStatus `json:"membership_status" bson:"membership_status"`
	MembershipStart  *time.Time       `json:"membership_start,omitempty" bson:"membership_start,omitempty"`
	MembershipEnd    *time.Time       `json:"membership_end,omitempty" bson:"membership_end,omitempty"`
	BorrowCount      int              `json:"borrow_count" bson:"borrow_count"`
	MaxBorrowLimit   int              `json:"max_borrow_limit" bson:"max_borrow_limit"`
	BorrowHistory    []string         `json:"borrow_history" bson:"borrow_history"`
	FinesOwed        float64          `json:"fines_owed" bson:"fines_owed"`
	AccountActive    bool             `json:"account_active" bson:"account_active"`
}

// Draft returns the user's mutable fields for merged re-validation. The
// password is left empty; updates never round-trip the plaintext.
func (u *User) Draft() UserDraft {
	return UserDraft{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: u.DateOfBirth,
		Address:     u.Address,
		Email:       u.Email,
		Username:    u.Username,
		Category:    u.Category,
	}
}
