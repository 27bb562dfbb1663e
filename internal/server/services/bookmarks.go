package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/dbx"
	"github.com/dmitrijs2005/bookmarker/internal/logging"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/repomanager"
)

type CreateBookmarkInput struct {
	Title       string
	Description string
	Link        string
}

// EditBookmarkInput carries a partial bookmark update; nil fields are left alone.
type EditBookmarkInput struct {
	Title       *string
	Description *string
	Link        *string
}

// BookmarkService manages bookmarks on behalf of their owner. Every
// operation is scoped to userID; touching someone else's bookmark yields
// common.ErrAccessDenied.
type BookmarkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *BookmarkService {
	if log == nil {
		log = logging.Nop{}
	}
	return &BookmarkService{db: db, repomanager: m, log: log.With("module", "bookmarks")}
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	return s.repomanager.Bookmarks(s.db).ListByUser(ctx, userID)
}

// Get returns one bookmark. A missing id is common.ErrorNotFound; a bookmark
// owned by another user is common.ErrAccessDenied.
func (s *BookmarkService) Get(ctx context.Context, userID, id string) (*models.Bookmark, error) {
	b, err := s.repomanager.Bookmarks(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, common.ErrAccessDenied
	}
	return b, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID string, in CreateBookmarkInput) (*models.Bookmark, error) {
	b, err := s.repomanager.Bookmarks(s.db).Create(ctx, &models.Bookmark{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "bookmark created", "account_id", userID, "bookmark_id", b.ID)
	return b, nil
}

// Edit applies in to the bookmark. Missing and foreign bookmarks are both
// common.ErrAccessDenied.
func (s *BookmarkService) Edit(ctx context.Context, userID, id string, in EditBookmarkInput) (*models.Bookmark, error) {
	var out *models.Bookmark

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		b, err := s.owned(ctx, repo, userID, id)
		if err != nil {
			return err
		}

		if in.Title != nil {
			b.Title = *in.Title
		}
		if in.Description != nil {
			b.Description = *in.Description
		}
		if in.Link != nil {
			b.Link = *in.Link
		}

		out, err = repo.Update(ctx, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the bookmark. Missing and foreign bookmarks are both
// common.ErrAccessDenied.
func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		if _, err := s.owned(ctx, repo, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Debug(ctx, "bookmark deleted", "account_id", userID, "bookmark_id", id)
	return nil
}

func (s *BookmarkService) owned(ctx context.Context, repo bookmarks.Repository, userID, id string) (*models.Bookmark, error) {
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccessDenied
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, common.ErrAccessDenied
	}
	return b, nil
}
