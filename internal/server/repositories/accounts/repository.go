// Package accounts stores Account records. Email is unique: Create and
// Update report a clash as common.ErrorAlreadyExists; lookups that match
// nothing return common.ErrorNotFound.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/bookmarker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
}
