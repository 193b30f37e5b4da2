package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountConflict is returned when the creating admin already owns an
	// account with the same email.
	ErrAccountConflict = errors.New("account with this email already exists")
	// ErrEmailTaken is returned when an update moves an account onto an email
	// held by any other account, regardless of owner.
	ErrEmailTaken = errors.New("email already exists")
)

// Account is a business contact record owned by the admin who created it.
type Account struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	AddedBy       uint      `json:"added_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// AccountPatch carries a partial update. Nil fields keep their current value.
type AccountPatch struct {
	Name          *string
	Email         *string
	ContactNumber *string
}

// Apply copies the non-nil fields of p onto a.
func (p AccountPatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.ContactNumber != nil {
		a.ContactNumber = *p.ContactNumber
	}
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.ContactNumber == nil
}
