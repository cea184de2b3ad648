package invitations

import "time"

// Status define el ciclo de vida de una invitación.
// pending es el único estado no-terminal.
// @Enum pending, accepted, expired, cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// DefaultTTL: ventana de validez de una invitación nueva.
const DefaultTTL = 7 * 24 * time.Hour

// Invitation es una oferta de acceso dirigida a un email, independiente
// de si ese email ya tiene cuenta. No otorga acceso por sí misma: solo
// el Grant resultante lo hace.
type Invitation struct {
	ID     string
	BabyID string

	InvitedEmail string // normalizado: trim + lowercase
	InvitedBy    string

	// Token es credencial de portador: único, no adivinable, y lo único
	// que hace falta para ver/aceptar la invitación hasta el accept.
	Token string

	Status Status

	CreatedAt  time.Time
	ExpiresAt  time.Time
	AcceptedAt *time.Time
}

// IsExpired evalúa la expiración contra el reloj, no contra Status.
// Una fila pending con ExpiresAt vencido puede quedar en storage hasta
// que el sweep la barra; este predicado es la verdad en lecturas.
func (i Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsAcceptable: pending y no vencida.
func (i Invitation) IsAcceptable(now time.Time) bool {
	return i.Status == StatusPending && !i.IsExpired(now)
}
