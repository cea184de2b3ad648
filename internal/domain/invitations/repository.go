package invitations

import (
	"context"
	"errors"
	"time"
)

// Sentinels que los repos (memory y postgres) devuelven.
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrDuplicateToken     = errors.New("invitation token already exists")
)

type Repository interface {
	Create(ctx context.Context, inv Invitation) error
	Update(ctx context.Context, inv Invitation) error
	GetByID(ctx context.Context, id string) (Invitation, error)
	GetByToken(ctx context.Context, token string) (Invitation, error)
	ListByBaby(ctx context.Context, babyID string) ([]Invitation, error)

	// FindPendingByBabyEmail busca invitaciones pending para el par
	// (babyID, invitedEmail). Puede haber más de una por data histórica;
	// el issuer aplica cancel-and-replace sobre todas.
	FindPendingByBabyEmail(ctx context.Context, babyID, email string) ([]Invitation, error)

	// ExpirePending marca expired toda pending con ExpiresAt < now.
	// Devuelve cuántas filas cambió. Lo usa el sweep periódico.
	ExpirePending(ctx context.Context, now time.Time) (int, error)
}
