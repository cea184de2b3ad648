package caregivers

import "context"

// Guard es el predicado de autorización central. Todas las mutaciones
// sobre grants/invitaciones y todo acceso a datos del perfil pasan por
// aquí; no hay otro camino de escritura.
//
// Es puro respecto al estado del repo: sin efectos secundarios, y
// testeable sin base de datos real.
type Guard struct {
	repo Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// CanAct: true si existe un grant (cualquier rol) para (babyID, userID).
func (g *Guard) CanAct(ctx context.Context, userID, babyID string) (bool, error) {
	if userID == "" || babyID == "" {
		return false, nil
	}
	_, err := g.repo.GetByBabyAndUser(ctx, babyID, userID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CanManageGrants: true solo si el rol del actor es owner.
// Gobierna invitar, cancelar invitaciones y revocar caregivers.
func (g *Guard) CanManageGrants(ctx context.Context, userID, babyID string) (bool, error) {
	if userID == "" || babyID == "" {
		return false, nil
	}
	grant, err := g.repo.GetByBabyAndUser(ctx, babyID, userID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return grant.Role == RoleOwner, nil
}
