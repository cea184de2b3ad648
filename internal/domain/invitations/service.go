package invitations

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/caregivers"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/platform/logger"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/identity"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyGranted = errors.New("email already has access to this baby")
)

// BabyNameLookup evita importar el paquete babies (rompe ciclos).
type BabyNameLookup interface {
	NameOf(ctx context.Context, babyID string) (string, error)
}

type Service struct {
	repo      Repository
	grants    *caregivers.Service
	directory identity.Directory
	notifier  notify.InvitationNotifier
	babyNames BabyNameLookup
	log       logger.Logger

	// acceptURLBase: base pública para armar el link de aceptación.
	// El token viaja como único query param y debe sobrevivir el
	// redirect de sign-in/sign-up.
	acceptURLBase string

	ttl time.Duration
	now func() time.Time
}

type Options struct {
	Repo      Repository
	Grants    *caregivers.Service
	Directory identity.Directory
	Notifier  notify.InvitationNotifier
	BabyNames BabyNameLookup
	Logger    logger.Logger

	AcceptURLBase string
	TTL           time.Duration // default: DefaultTTL
}

func NewService(opts Options) *Service {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Service{
		repo:          opts.Repo,
		grants:        opts.Grants,
		directory:     opts.Directory,
		notifier:      opts.Notifier,
		babyNames:     opts.BabyNames,
		log:           log,
		acceptURLBase: strings.TrimRight(strings.TrimSpace(opts.AcceptURLBase), "/"),
		ttl:           ttl,
		now:           time.Now,
	}
}

// Actor es el principal autenticado que ejecuta la operación.
type Actor struct {
	ID    string
	Email string
}

// InviteResult cubre las dos salidas de Invite:
// - GrantedDirectly: el email ya tenía cuenta => grant inmediato, sin invitación.
// - Invitación creada: token + URL de aceptación.
// DeliveryWarning viene seteado cuando el mail no salió (no-fatal).
type InviteResult struct {
	GrantedDirectly bool

	Grant      caregivers.Grant
	Invitation Invitation
	AcceptURL  string

	DeliveryWarning string
}

// Invite ofrece acceso caregiver a un email.
// Si el email ya tiene cuenta sin grant: grant directo, sin invitación.
// Si no tiene cuenta: invitación pending con token de 7 días.
// Política para pending previas al mismo (baby, email): cancel-and-replace,
// así nunca se acumulan invitaciones vivas duplicadas y el token viejo muere.
func (s *Service) Invite(ctx context.Context, actor Actor, babyID, email string) (InviteResult, error) {
	babyID = strings.TrimSpace(babyID)
	if strings.TrimSpace(actor.ID) == "" || babyID == "" {
		return InviteResult{}, ErrInvalidInput
	}

	ok, err := s.grants.Guard().CanManageGrants(ctx, actor.ID, babyID)
	if err != nil {
		return InviteResult{}, err
	}
	if !ok {
		return InviteResult{}, ErrForbidden
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return InviteResult{}, ErrInvalidInput
	}

	now := s.now()

	// ¿El email ya tiene cuenta? Sin directory configurado (modo dev
	// mínimo) todo email cae al camino de invitación.
	var user identity.User
	if s.directory != nil {
		user, err = s.directory.LookupByEmail(ctx, normalized)
	} else {
		err = identity.ErrUserNotFound
	}
	switch {
	case err == nil:
		// Cuenta existente: grant directo, sin fila de invitación.
		g, err := s.grants.GrantCaregiver(ctx, babyID, user.ID, actor.ID)
		if err != nil {
			if errors.Is(err, caregivers.ErrAlreadyGranted) {
				return InviteResult{}, ErrAlreadyGranted
			}
			return InviteResult{}, err
		}
		return InviteResult{GrantedDirectly: true, Grant: g}, nil

	case errors.Is(err, identity.ErrUserNotFound):
		// sigue al camino de invitación

	default:
		return InviteResult{}, err
	}

	// Cancel-and-replace: matar pending previas para (baby, email).
	stale, err := s.repo.FindPendingByBabyEmail(ctx, babyID, normalized)
	if err != nil {
		return InviteResult{}, err
	}
	for _, old := range stale {
		old.Status = StatusCancelled
		if uerr := s.repo.Update(ctx, old); uerr != nil {
			s.log.Warn("cancel stale invitation failed", map[string]any{
				"invitation_id": old.ID,
				"error":         uerr.Error(),
			})
		}
	}

	token, err := newToken()
	if err != nil {
		return InviteResult{}, err
	}

	inv := Invitation{
		ID:           uuid.NewString(),
		BabyID:       babyID,
		InvitedEmail: normalized,
		InvitedBy:    actor.ID,
		Token:        token,
		Status:       StatusPending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return InviteResult{}, err
	}

	res := InviteResult{
		Invitation: inv,
		AcceptURL:  s.AcceptURL(token),
	}

	// Notificación best-effort: una falla de entrega nunca revierte la
	// invitación; el token igual se devuelve para compartirlo a mano.
	if warn := s.sendInvitationEmail(ctx, actor, inv, res.AcceptURL); warn != "" {
		res.DeliveryWarning = warn
	}

	return res, nil
}

// Cancel marca cancelled una invitación pending. Solo el owner.
// Idempotente: sobre estados terminales no hace nada y no es error.
func (s *Service) Cancel(ctx context.Context, actorID, invitationID string) (Invitation, error) {
	actorID = strings.TrimSpace(actorID)
	invitationID = strings.TrimSpace(invitationID)
	if actorID == "" || invitationID == "" {
		return Invitation{}, ErrInvalidInput
	}

	inv, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, ErrInvitationNotFound) {
			return Invitation{}, ErrNotFound
		}
		return Invitation{}, err
	}

	ok, err := s.grants.Guard().CanManageGrants(ctx, actorID, inv.BabyID)
	if err != nil {
		return Invitation{}, err
	}
	if !ok {
		return Invitation{}, ErrForbidden
	}

	if inv.Status != StatusPending {
		return inv, nil
	}

	inv.Status = StatusCancelled
	if err := s.repo.Update(ctx, inv); err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

// ListByBaby lista el historial de invitaciones de un perfil. Solo el owner.
// El status devuelto refleja la expiración derivada (IsExpired), aunque la
// fila todavía diga pending.
func (s *Service) ListByBaby(ctx context.Context, actorID, babyID string) ([]Invitation, error) {
	actorID = strings.TrimSpace(actorID)
	babyID = strings.TrimSpace(babyID)
	if actorID == "" || babyID == "" {
		return nil, ErrInvalidInput
	}

	ok, err := s.grants.Guard().CanManageGrants(ctx, actorID, babyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	items, err := s.repo.ListByBaby(ctx, babyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range items {
		if items[i].Status == StatusPending && items[i].IsExpired(now) {
			items[i].Status = StatusExpired
		}
	}
	return items, nil
}

// AcceptURL arma el link público de aceptación para un token.
func (s *Service) AcceptURL(token string) string {
	return s.acceptURLBase + "/accept-invite?token=" + url.QueryEscape(token)
}

func (s *Service) sendInvitationEmail(ctx context.Context, actor Actor, inv Invitation, acceptURL string) string {
	if s.notifier == nil {
		return ""
	}

	babyName := ""
	if s.babyNames != nil {
		if n, err := s.babyNames.NameOf(ctx, inv.BabyID); err == nil {
			babyName = n
		}
	}

	err := s.notifier.SendInvitation(ctx, notify.Invitation{
		To:          inv.InvitedEmail,
		AcceptURL:   acceptURL,
		BabyName:    babyName,
		InviterName: actor.Email,
	})
	if err != nil {
		s.log.Warn("invitation email delivery failed", map[string]any{
			"invitation_id": inv.ID,
			"baby_id":       inv.BabyID,
			"error":         err.Error(),
		})
		return "invitation created but the email could not be delivered; share the link manually"
	}
	return ""
}

// NormalizeEmail: trim + lowercase + validación mínima de formato.
// La comparación invitado-vs-principal es siempre sobre la forma normalizada.
func NormalizeEmail(raw string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(raw))
	if e == "" {
		return "", ErrInvalidInput
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", ErrInvalidInput
	}
	return e, nil
}
