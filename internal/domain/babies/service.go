package babies

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

// OwnerGrantWriter evita importar el paquete caregivers (rompe ciclos).
// Crear un perfil crea también su grant owner, en la misma operación.
type OwnerGrantWriter interface {
	CreateOwnerGrant(ctx context.Context, babyID, userID string) error
}

// ActGuard evita importar caregivers para el predicado de lectura.
type ActGuard interface {
	CanAct(ctx context.Context, userID, babyID string) (bool, error)
}

type Service struct {
	repo        Repository
	ownerGrants OwnerGrantWriter
	guard       ActGuard
	now         func() time.Time
}

func NewService(repo Repository, ownerGrants OwnerGrantWriter, guard ActGuard) *Service {
	return &Service{
		repo:        repo,
		ownerGrants: ownerGrants,
		guard:       guard,
		now:         time.Now,
	}
}

type CreateInput struct {
	Name      string
	Sex       string
	BirthDate *time.Time
	Notes     string
}

// Create registra el perfil y el grant owner del creador (grantedBy nil).
// Si el grant no se puede escribir, la creación falla completa: un perfil
// sin owner sería inalcanzable para todos.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Baby, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Baby{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Baby{}, ErrInvalidInput
	}

	sex := Sex(strings.TrimSpace(in.Sex))
	if sex == "" {
		sex = SexUnknown
	}
	switch sex {
	case SexMale, SexFemale, SexUnknown:
	default:
		return Baby{}, ErrInvalidInput
	}

	now := s.now()
	b := Baby{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Baby{}, err
	}
	if err := s.ownerGrants.CreateOwnerGrant(ctx, b.ID, ownerUserID); err != nil {
		// Compensación: sin grant owner el perfil sería inalcanzable,
		// así que la fila no puede quedar.
		_ = s.repo.Delete(ctx, b.ID)
		return Baby{}, err
	}
	return b, nil
}

// Get devuelve el perfil si el actor tiene un grant (cualquier rol).
func (s *Service) Get(ctx context.Context, actorID, babyID string) (Baby, error) {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	if actorID == "" || babyID == "" {
		return Baby{}, ErrInvalidInput
	}

	ok, err := s.guard.CanAct(ctx, actorID, babyID)
	if err != nil {
		return Baby{}, err
	}
	if !ok {
		return Baby{}, ErrForbidden
	}

	b, err := s.repo.GetByID(ctx, babyID)
	if err != nil {
		if errors.Is(err, ErrBabyNotFound) {
			return Baby{}, ErrNotFound
		}
		return Baby{}, err
	}
	return b, nil
}

// ListByIDs resuelve perfiles por id (para "mis bebés" vía grants).
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Baby, error) {
	if len(ids) == 0 {
		return []Baby{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

// NameOf implementa invitations.BabyNameLookup sin exigir grant: lo usa
// el issuer ya autorizado para armar el mail de invitación.
func (s *Service) NameOf(ctx context.Context, babyID string) (string, error) {
	b, err := s.repo.GetByID(ctx, babyID)
	if err != nil {
		return "", err
	}
	return b.Name, nil
}

// Exists valida que el perfil exista (para handlers de otros módulos).
func (s *Service) Exists(ctx context.Context, babyID string) (bool, error) {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(babyID))
	if err != nil {
		if errors.Is(err, ErrBabyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
