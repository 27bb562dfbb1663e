// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is the durable credential record of a registered user.
// PasswordHash never leaves the service layer; use Public for anything
// that is handed to a caller.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicAccount is the caller-facing view of an Account. It has no
// password hash field.
type PublicAccount struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the credential from the account.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
