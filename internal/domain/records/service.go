package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// ActGuard evita importar caregivers. El acceso a registros es
// exactamente "existe un grant", sin distinción de rol: el enforcement
// vive en la capa de datos, no solo en la UI.
type ActGuard interface {
	CanAct(ctx context.Context, userID, babyID string) (bool, error)
}

type Service struct {
	repo  Repository
	guard ActGuard
	now   func() time.Time
}

func NewService(repo Repository, guard ActGuard) *Service {
	return &Service{
		repo:  repo,
		guard: guard,
		now:   time.Now,
	}
}

type CreateInput struct {
	Kind       Kind
	OccurredAt time.Time
	Note       string
	Amount     float64
}

func (s *Service) Create(ctx context.Context, actorID, babyID string, in CreateInput) (Record, error) {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	if actorID == "" || babyID == "" {
		return Record{}, ErrInvalidInput
	}
	if !validKind(in.Kind) {
		return Record{}, ErrInvalidInput
	}
	if in.OccurredAt.IsZero() {
		return Record{}, ErrInvalidInput
	}

	ok, err := s.guard.CanAct(ctx, actorID, babyID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, ErrForbidden
	}

	rec := Record{
		ID:         uuid.NewString(),
		BabyID:     babyID,
		Kind:       in.Kind,
		OccurredAt: in.OccurredAt,
		Note:       strings.TrimSpace(in.Note),
		Amount:     in.Amount,
		RecordedBy: actorID,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get devuelve un registro puntual del perfil. Mismo guard que el listado;
// un registro de otro perfil es not found, no forbidden (no filtra existencia).
func (s *Service) Get(ctx context.Context, actorID, babyID, recordID string) (Record, error) {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	recordID = strings.TrimSpace(recordID)
	if actorID == "" || babyID == "" || recordID == "" {
		return Record{}, ErrInvalidInput
	}

	ok, err := s.guard.CanAct(ctx, actorID, babyID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, ErrForbidden
	}

	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if rec.BabyID != babyID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) ListByBaby(ctx context.Context, actorID, babyID string, filter ListFilter) ([]Record, error) {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	if actorID == "" || babyID == "" {
		return nil, ErrInvalidInput
	}

	ok, err := s.guard.CanAct(ctx, actorID, babyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.repo.ListByBaby(ctx, babyID, filter)
}

func validKind(k Kind) bool {
	switch k {
	case KindFeeding, KindSleep, KindDiaper, KindGrowth, KindMedication, KindVaccination, KindMilestone:
		return true
	}
	return false
}
