package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/babies"
)

type babyRepo struct {
	mu   sync.RWMutex
	byID map[string]babies.Baby
}

func NewBabiesRepo() babies.Repository {
	return &babyRepo{
		byID: make(map[string]babies.Baby),
	}
}

func (r *babyRepo) Create(ctx context.Context, b babies.Baby) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		return errors.New("baby id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("baby already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *babyRepo) GetByID(ctx context.Context, id string) (babies.Baby, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return babies.Baby{}, babies.ErrBabyNotFound
	}
	return b, nil
}

func (r *babyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return babies.ErrBabyNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *babyRepo) ListByIDs(ctx context.Context, ids []string) ([]babies.Baby, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]babies.Baby, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}
