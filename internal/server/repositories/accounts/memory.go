package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. The email index is
// checked and written under one lock, which gives the same insert-or-fail
// guarantee as the unique index in PostgreSQL.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Account
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[account.Email]; taken {
		return nil, common.ErrorAlreadyExists
	}

	stored := *account
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[account.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if owner, taken := r.byEmail[account.Email]; taken && owner != account.ID {
		return nil, common.ErrorAlreadyExists
	}

	delete(r.byEmail, current.Email)
	current.Email = account.Email
	current.FirstName = account.FirstName
	current.LastName = account.LastName
	current.UpdatedAt = r.now().UTC()
	r.byEmail[current.Email] = current.ID

	out := *current
	return &out, nil
}
