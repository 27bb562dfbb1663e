package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/dbx"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
)

// PostgresRepository implements bookmark storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	query := `
		INSERT INTO bookmarks (user_id, title, description, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	created := *b
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Title, b.Description, b.Link).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return &created, nil
}

// ListByUser returns the user's bookmarks oldest first. An empty result is a
// non-nil empty slice.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	query := `
		SELECT id, user_id, title, description, link, created_at, updated_at FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	result := make([]*models.Bookmark, 0)
	for rows.Next() {
		var item models.Bookmark
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Link,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Bookmark, error) {
	query := `
		SELECT id, user_id, title, description, link, created_at, updated_at FROM bookmarks
		WHERE id = $1
	`
	var item models.Bookmark
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Link, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return &item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	query := `
		UPDATE bookmarks SET title = $2, description = $3, link = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	updated := *b
	err := r.db.QueryRowContext(ctx, query, b.ID, b.Title, b.Description, b.Link).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return &updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
