package invitations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/caregivers"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/platform/logger"

	"golang.org/x/sync/singleflight"
)

// AcceptState es la máquina de estados de la superficie de aceptación.
// Estados explícitos con transiciones guardadas, no booleanos sueltos.
// @Enum invalid_link, invitation_invalid, awaiting_auth, accepting, accepted, accept_error
type AcceptState string

const (
	StateInvalidLink  AcceptState = "invalid_link"        // sin token => terminal
	StateInvalid      AcceptState = "invitation_invalid"  // terminal, con Reason
	StateAwaitingAuth AcceptState = "awaiting_auth"       // invitación válida, falta sesión
	StateAccepting    AcceptState = "accepting"           // algoritmo en vuelo
	StateAccepted     AcceptState = "accepted"            // terminal, éxito
	StateAcceptError  AcceptState = "accept_error"        // terminal o recuperable (EmailMismatch)
)

// InvalidReason: motivo específico, nunca un error genérico.
type InvalidReason string

const (
	ReasonNotFound        InvalidReason = "not_found"
	ReasonAlreadyAccepted InvalidReason = "already_accepted"
	ReasonExpired         InvalidReason = "expired"
	ReasonCancelled       InvalidReason = "cancelled"
)

// EmailMismatchError: la sesión autenticada no corresponde al email
// invitado. Recuperable: el usuario puede cerrar sesión y reintentar.
// El mensaje nombra el email esperado.
type EmailMismatchError struct {
	InvitedEmail string
}

func (e *EmailMismatchError) Error() string {
	return fmt.Sprintf("this invitation was sent to %s; sign in with that account", e.InvitedEmail)
}

// Outcome es el resultado observable de Preview/Accept.
type Outcome struct {
	State  AcceptState
	Reason InvalidReason

	Invitation Invitation
	Grant      caregivers.Grant

	// Warning no-fatal: el grant existe pero alguna escritura secundaria
	// falló (p.ej. no se pudo marcar accepted la invitación).
	Warning string
}

// Coordinator convierte (token, sesión autenticada) en un grant,
// exactamente una vez en efecto. El token llega primero; la sesión puede
// llegar después o nunca, así que Preview y Accept son entradas separadas.
type Coordinator struct {
	repo   Repository
	grants *caregivers.Service
	log    logger.Logger
	now    func() time.Time

	// flights deduplica estructuralmente intentos concurrentes por
	// (token, userID): el segundo caller espera el resultado del primero
	// en vez de correr el algoritmo de nuevo. Entre procesos (dos tabs
	// contra dos replicas) protege el short-circuit idempotente más la
	// unicidad de (baby, user) en storage.
	flights singleflight.Group
}

func NewCoordinator(repo Repository, grants *caregivers.Service, log logger.Logger) *Coordinator {
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Coordinator{
		repo:   repo,
		grants: grants,
		log:    log,
		now:    time.Now,
	}
}

// Preview valida un token sin requerir sesión. Alimenta la pantalla de
// aceptación antes del sign-in; el token debe sobrevivir el redirect de
// auth como query param.
func (c *Coordinator) Preview(ctx context.Context, token string) (Outcome, error) {
	inv, out, ok := c.loadValid(ctx, token)
	if !ok {
		return out, nil
	}
	return Outcome{State: StateAwaitingAuth, Invitation: inv}, nil
}

// Accept corre el algoritmo de aceptación para (token, principal).
// Orden garantizado: el chequeo de email completa antes de cualquier
// escritura. Semántica at-least-once con efecto exactly-once: el
// short-circuit del paso de grant absorbe ejecuciones duplicadas.
func (c *Coordinator) Accept(ctx context.Context, token string, principal Actor) (Outcome, error) {
	if strings.TrimSpace(principal.ID) == "" {
		inv, out, ok := c.loadValid(ctx, token)
		if !ok {
			return out, nil
		}
		return Outcome{State: StateAwaitingAuth, Invitation: inv}, nil
	}

	key := token + "|" + principal.ID
	v, err, _ := c.flights.Do(key, func() (any, error) {
		return c.accept(ctx, token, principal)
	})
	if err != nil {
		return Outcome{State: StateAcceptError}, err
	}
	return v.(Outcome), nil
}

func (c *Coordinator) accept(ctx context.Context, token string, principal Actor) (Outcome, error) {
	inv, out, ok := c.loadValid(ctx, token)
	if !ok {
		// Reintento sobre un token ya consumido por este mismo invitado:
		// si el email coincide y el grant sigue vivo, es éxito idempotente,
		// no un link muerto. Un grant revocado NO resucita por esta vía.
		if out.Reason == ReasonAlreadyAccepted &&
			strings.EqualFold(strings.TrimSpace(principal.Email), out.Invitation.InvitedEmail) {
			if g, gerr := c.grants.GetGrant(ctx, out.Invitation.BabyID, principal.ID); gerr == nil {
				return Outcome{State: StateAccepted, Invitation: out.Invitation, Grant: g}, nil
			}
		}
		return out, nil
	}

	// 1-2) Email de la sesión vs email invitado, case-insensitive.
	// Mismatch: no se muta nada; recuperable con otra cuenta.
	if !strings.EqualFold(strings.TrimSpace(principal.Email), inv.InvitedEmail) {
		return Outcome{State: StateAcceptError, Invitation: inv},
			&EmailMismatchError{InvitedEmail: inv.InvitedEmail}
	}

	// 3) Short-circuit idempotente: si el grant ya existe (aceptación
	// previa, carrera entre tabs, grant directo), es éxito sin duplicar.
	existing, err := c.grants.GetGrant(ctx, inv.BabyID, principal.ID)
	if err == nil {
		return Outcome{State: StateAccepted, Invitation: inv, Grant: existing}, nil
	}
	if !errors.Is(err, caregivers.ErrNotFound) {
		return Outcome{State: StateAcceptError}, err
	}

	// 4) Grant + status accepted. Si el grant entra pero el status no,
	// se degrada a warning: perder el estado terminal de la invitación
	// es aceptable, perder el grant no.
	grant, err := c.grants.GrantCaregiver(ctx, inv.BabyID, principal.ID, inv.InvitedBy)
	if err != nil {
		if errors.Is(err, caregivers.ErrAlreadyGranted) {
			// Carrera perdida contra otro accept: el efecto ya está.
			if g, gerr := c.grants.GetGrant(ctx, inv.BabyID, principal.ID); gerr == nil {
				return Outcome{State: StateAccepted, Invitation: inv, Grant: g}, nil
			}
			return Outcome{State: StateAccepted, Invitation: inv}, nil
		}
		return Outcome{State: StateAcceptError}, err
	}

	now := c.now()
	inv.Status = StatusAccepted
	inv.AcceptedAt = &now

	res := Outcome{State: StateAccepted, Invitation: inv, Grant: grant}
	if err := c.repo.Update(ctx, inv); err != nil {
		c.log.Warn("grant created but invitation status update failed", map[string]any{
			"invitation_id": inv.ID,
			"baby_id":       inv.BabyID,
			"error":         err.Error(),
		})
		res.Warning = "access granted, but the invitation could not be marked accepted"
	}
	return res, nil
}

// loadValid resuelve token -> invitación aceptable.
// ok=false viene con el Outcome terminal ya armado.
// La expiración se evalúa contra el reloj aunque Status diga pending.
func (c *Coordinator) loadValid(ctx context.Context, token string) (Invitation, Outcome, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Invitation{}, Outcome{State: StateInvalidLink}, false
	}

	inv, err := c.repo.GetByToken(ctx, token)
	if err != nil {
		return Invitation{}, Outcome{State: StateInvalid, Reason: ReasonNotFound}, false
	}

	switch inv.Status {
	case StatusAccepted:
		return Invitation{}, Outcome{State: StateInvalid, Reason: ReasonAlreadyAccepted, Invitation: inv}, false
	case StatusCancelled:
		return Invitation{}, Outcome{State: StateInvalid, Reason: ReasonCancelled, Invitation: inv}, false
	case StatusExpired:
		return Invitation{}, Outcome{State: StateInvalid, Reason: ReasonExpired, Invitation: inv}, false
	}

	if inv.IsExpired(c.now()) {
		return Invitation{}, Outcome{State: StateInvalid, Reason: ReasonExpired, Invitation: inv}, false
	}

	return inv, Outcome{}, true
}
