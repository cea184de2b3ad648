package caregivers

import "time"

// Role define el nivel de acceso sobre un perfil.
// @Enum owner, caregiver
type Role string

const (
	RoleOwner     Role = "owner"
	RoleCaregiver Role = "caregiver"
)

// Grant es el registro durable de que un usuario puede actuar sobre un
// perfil. Hay exactamente un grant por (BabyID, UserID); lo garantiza
// la capa de storage con un unique constraint.
type Grant struct {
	ID string

	BabyID string
	UserID string

	Role Role

	GrantedAt time.Time
	GrantedBy *string // nil para el grant owner original
}
