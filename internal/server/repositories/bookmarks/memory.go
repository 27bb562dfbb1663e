package bookmarks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.Bookmark
	seq   map[string]int64
	next  int64
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*models.Bookmark),
		seq:   make(map[string]int64),
		now:   time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *b
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	r.next++
	r.items[stored.ID] = &stored
	r.seq[stored.ID] = r.next

	out := stored
	return &out, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Bookmark, 0)
	for _, b := range r.items {
		if b.UserID == userID {
			out := *b
			result = append(result, &out)
		}
	}
	// insertion order, same as created_at ordering in postgres
	sort.Slice(result, func(i, j int) bool {
		return r.seq[result[i].ID] < r.seq[result[j].ID]
	})
	return result, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *b
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[b.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	current.Title = b.Title
	current.Description = b.Description
	current.Link = b.Link
	current.UpdatedAt = r.now().UTC()

	out := *current
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	delete(r.seq, id)
	return nil
}

