package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/invitations"
)

type invitationsRepo struct {
	mu      sync.RWMutex
	byID    map[string]invitations.Invitation
	byToken map[string]string // token -> id; unicidad del token como en postgres
}

func NewInvitationsRepo() invitations.Repository {
	return &invitationsRepo{
		byID:    make(map[string]invitations.Invitation),
		byToken: make(map[string]string),
	}
}

func (r *invitationsRepo) Create(ctx context.Context, inv invitations.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inv.ID == "" || inv.Token == "" {
		return errors.New("invitation id and token required")
	}
	if _, exists := r.byID[inv.ID]; exists {
		return errors.New("invitation already exists")
	}
	if _, exists := r.byToken[inv.Token]; exists {
		return invitations.ErrDuplicateToken
	}
	r.byID[inv.ID] = inv
	r.byToken[inv.Token] = inv.ID
	return nil
}

func (r *invitationsRepo) Update(ctx context.Context, inv invitations.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inv.ID == "" {
		return errors.New("invitation id required")
	}
	if _, exists := r.byID[inv.ID]; !exists {
		return invitations.ErrInvitationNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *invitationsRepo) GetByID(ctx context.Context, id string) (invitations.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return invitations.Invitation{}, invitations.ErrInvitationNotFound
	}
	return inv, nil
}

func (r *invitationsRepo) GetByToken(ctx context.Context, token string) (invitations.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byToken[token]
	if !ok {
		return invitations.Invitation{}, invitations.ErrInvitationNotFound
	}
	return r.byID[id], nil
}

func (r *invitationsRepo) ListByBaby(ctx context.Context, babyID string) ([]invitations.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invitations.Invitation, 0)
	for _, inv := range r.byID {
		if inv.BabyID == babyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *invitationsRepo) FindPendingByBabyEmail(ctx context.Context, babyID, email string) ([]invitations.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invitations.Invitation, 0)
	for _, inv := range r.byID {
		if inv.BabyID == babyID && inv.InvitedEmail == email && inv.Status == invitations.StatusPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *invitationsRepo) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, inv := range r.byID {
		if inv.Status == invitations.StatusPending && now.After(inv.ExpiresAt) {
			inv.Status = invitations.StatusExpired
			r.byID[id] = inv
			n++
		}
	}
	return n, nil
}
