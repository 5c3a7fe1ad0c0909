package accounts

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryStore is a map-backed Store used by tests and local development.
// Each InTx call holds the store lock for its whole duration, which gives
// serializable transactions, and restores a snapshot when fn fails so
// rollback semantics match the Postgres store. The unique index on loginId
// is emulated by the byLogin map.
type InMemoryStore struct {
	mu      sync.Mutex
	seq     int64
	byID    map[int64]Account
	byLogin map[string]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[int64]Account),
		byLogin: make(map[string]int64),
	}
}

func (s *InMemoryStore) InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq
	byID := make(map[int64]Account, len(s.byID))
	for k, v := range s.byID {
		byID[k] = v
	}
	byLogin := make(map[string]int64, len(s.byLogin))
	for k, v := range s.byLogin {
		byLogin[k] = v
	}

	if err := fn(ctx, &inMemoryRepository{store: s}); err != nil {
		s.seq, s.byID, s.byLogin = seq, byID, byLogin
		return err
	}
	return nil
}

type inMemoryRepository struct {
	store *InMemoryStore
}

func (r *inMemoryRepository) Insert(ctx context.Context, account *Account) (int64, error) {
	s := r.store
	if _, taken := s.byLogin[account.LoginID]; taken {
		return 0, ErrLoginIDTaken
	}
	s.seq++
	stored := *account
	stored.AccountID = s.seq
	s.byID[stored.AccountID] = stored
	s.byLogin[stored.LoginID] = stored.AccountID
	return stored.AccountID, nil
}

func (r *inMemoryRepository) FindByID(ctx context.Context, accountID int64) (*Account, error) {
	account, ok := r.store.byID[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (r *inMemoryRepository) FindByLoginID(ctx context.Context, loginID string) (*Account, error) {
	id, ok := r.store.byLogin[loginID]
	if !ok {
		return nil, ErrNotFound
	}
	account := r.store.byID[id]
	return &account, nil
}

func (r *inMemoryRepository) UpdateStatus(ctx context.Context, accountID int64, status Status) error {
	account, ok := r.store.byID[accountID]
	if !ok {
		return fmt.Errorf("update status: %w", ErrNotFound)
	}
	account.Status = status
	r.store.byID[accountID] = account
	return nil
}
