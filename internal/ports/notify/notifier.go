package notify

import (
	"context"
	"errors"
)

// ErrDeliveryFailed marca una notificación que no se pudo entregar.
// Para los callers es no-fatal: la invitación sigue válida y el token
// se puede compartir a mano.
var ErrDeliveryFailed = errors.New("notification delivery failed")

type Invitation struct {
	To          string
	AcceptURL   string
	BabyName    string
	InviterName string
}

// InvitationNotifier entrega el mail de invitación. Best-effort:
// una falla de entrega nunca revierte la invitación creada.
type InvitationNotifier interface {
	SendInvitation(ctx context.Context, inv Invitation) error
}
