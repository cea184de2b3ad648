package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/caregivers"
)

type grantsRepo struct {
	mu sync.RWMutex

	// key (babyID, userID): la unicidad del par se impone acá,
	// igual que el unique constraint en postgres.
	byPair map[pairKey]caregivers.Grant
}

type pairKey struct {
	babyID string
	userID string
}

func NewGrantsRepo() caregivers.Repository {
	return &grantsRepo{
		byPair: make(map[pairKey]caregivers.Grant),
	}
}

func (r *grantsRepo) Create(ctx context.Context, g caregivers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" || g.BabyID == "" || g.UserID == "" {
		return errors.New("grant id, baby id and user id required")
	}

	k := pairKey{babyID: g.BabyID, userID: g.UserID}
	if _, exists := r.byPair[k]; exists {
		return caregivers.ErrDuplicateGrant
	}
	r.byPair[k] = g
	return nil
}

func (r *grantsRepo) GetByBabyAndUser(ctx context.Context, babyID, userID string) (caregivers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byPair[pairKey{babyID: babyID, userID: userID}]
	if !ok {
		return caregivers.Grant{}, caregivers.ErrGrantNotFound
	}
	return g, nil
}

func (r *grantsRepo) ListByBaby(ctx context.Context, babyID string) ([]caregivers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]caregivers.Grant, 0)
	for k, g := range r.byPair {
		if k.babyID == babyID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *grantsRepo) ListByUser(ctx context.Context, userID string) ([]caregivers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]caregivers.Grant, 0)
	for k, g := range r.byPair {
		if k.userID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *grantsRepo) Delete(ctx context.Context, babyID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{babyID: babyID, userID: userID}
	if _, exists := r.byPair[k]; !exists {
		return caregivers.ErrGrantNotFound
	}
	delete(r.byPair, k)
	return nil
}
