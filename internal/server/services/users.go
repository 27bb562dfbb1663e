package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/dbx"
	"github.com/dmitrijs2005/bookmarker/internal/logging"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/repomanager"
)

// EditUserInput carries a partial profile update; nil fields are left alone.
type EditUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService serves the authenticated user's own profile.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewUserService constructs a UserService. db may be nil when m is backed by
// memory.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *UserService {
	if log == nil {
		log = logging.Nop{}
	}
	return &UserService{db: db, repomanager: m, log: log.With("module", "users")}
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.PublicAccount, error) {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// Edit applies in to the user's profile inside one transaction. Moving to an
// email another account holds yields common.ErrDuplicateAccount.
func (s *UserService) Edit(ctx context.Context, userID string, in EditUserInput) (*models.PublicAccount, error) {
	var out *models.Account

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if in.Email != nil {
			account.Email = *in.Email
		}
		if in.FirstName != nil {
			account.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			account.LastName = *in.LastName
		}

		out, err = repo.Update(ctx, account)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, err
	}

	s.log.Info(ctx, "profile updated", "account_id", out.ID)
	return out.Public(), nil
}
