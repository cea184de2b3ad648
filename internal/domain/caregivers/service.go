package caregivers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyGranted    = errors.New("user already has access to this baby")
	ErrCannotRemoveOwner = errors.New("cannot remove the owner grant")
)

type Service struct {
	repo  Repository
	guard *Guard
	now   func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		guard: NewGuard(repo),
		now:   time.Now,
	}
}

// Guard expone el predicado de autorización para otros módulos
// (invitations, records, babies).
func (s *Service) Guard() *Guard {
	return s.guard
}

// CreateOwnerGrant crea el grant owner al registrar un perfil.
// GrantedBy queda nil: nadie le otorgó acceso al owner original.
func (s *Service) CreateOwnerGrant(ctx context.Context, babyID, userID string) (Grant, error) {
	babyID = strings.TrimSpace(babyID)
	userID = strings.TrimSpace(userID)
	if babyID == "" || userID == "" {
		return Grant{}, ErrInvalidInput
	}

	g := Grant{
		ID:        uuid.NewString(),
		BabyID:    babyID,
		UserID:    userID,
		Role:      RoleOwner,
		GrantedAt: s.now(),
		GrantedBy: nil,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, ErrDuplicateGrant) {
			return Grant{}, ErrAlreadyGranted
		}
		return Grant{}, err
	}
	return g, nil
}

// GrantCaregiver crea un grant caregiver. Lo usan el issuer (grant
// directo cuando el email ya tiene cuenta) y el acceptance coordinator.
// No valida rol del actor: los llamadores ya pasaron por el guard.
func (s *Service) GrantCaregiver(ctx context.Context, babyID, userID, grantedBy string) (Grant, error) {
	babyID = strings.TrimSpace(babyID)
	userID = strings.TrimSpace(userID)
	grantedBy = strings.TrimSpace(grantedBy)
	if babyID == "" || userID == "" || grantedBy == "" {
		return Grant{}, ErrInvalidInput
	}

	g := Grant{
		ID:        uuid.NewString(),
		BabyID:    babyID,
		UserID:    userID,
		Role:      RoleCaregiver,
		GrantedAt: s.now(),
		GrantedBy: &grantedBy,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, ErrDuplicateGrant) {
			return Grant{}, ErrAlreadyGranted
		}
		return Grant{}, err
	}
	return g, nil
}

// GetGrant devuelve el grant de (babyID, userID) si existe.
func (s *Service) GetGrant(ctx context.Context, babyID, userID string) (Grant, error) {
	babyID = strings.TrimSpace(babyID)
	userID = strings.TrimSpace(userID)
	if babyID == "" || userID == "" {
		return Grant{}, ErrInvalidInput
	}
	g, err := s.repo.GetByBabyAndUser(ctx, babyID, userID)
	if err != nil {
		if isNotFound(err) {
			return Grant{}, ErrNotFound
		}
		return Grant{}, err
	}
	return g, nil
}

// Revoke elimina el grant de targetUserID sobre babyID.
// Solo el owner puede revocar, y el grant owner no se puede revocar
// (la propiedad no es transferible por este módulo).
// No toca el historial de invitaciones.
func (s *Service) Revoke(ctx context.Context, actorID, babyID, targetUserID string) error {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	targetUserID = strings.TrimSpace(targetUserID)
	if actorID == "" || babyID == "" || targetUserID == "" {
		return ErrInvalidInput
	}

	ok, err := s.guard.CanManageGrants(ctx, actorID, babyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	target, err := s.repo.GetByBabyAndUser(ctx, babyID, targetUserID)
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if target.Role == RoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.repo.Delete(ctx, babyID, targetUserID)
}

// ListByBaby lista los grants de un perfil. Solo el owner.
func (s *Service) ListByBaby(ctx context.Context, actorID, babyID string) ([]Grant, error) {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	if actorID == "" || babyID == "" {
		return nil, ErrInvalidInput
	}

	ok, err := s.guard.CanManageGrants(ctx, actorID, babyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.repo.ListByBaby(ctx, babyID)
}

// ListByUser lista los grants del propio usuario (sus perfiles visibles).
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Grant, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// BabyIDsFor devuelve los IDs de perfiles alcanzables por los grants
// del usuario. El conjunto visible de un principal es exactamente esto.
func (s *Service) BabyIDsFor(ctx context.Context, userID string) ([]string, error) {
	items, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, g := range items {
		ids = append(ids, g.BabyID)
	}
	return ids, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrGrantNotFound)
}
