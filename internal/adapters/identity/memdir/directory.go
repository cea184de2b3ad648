package memdir

import (
	"context"
	"strings"
	"sync"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/identity"
)

// Directory es un directorio en memoria para dev y tests: se registran
// cuentas a mano y LookupByEmail resuelve contra eso.
type Directory struct {
	mu      sync.RWMutex
	byEmail map[string]identity.User
}

func New() *Directory {
	return &Directory{
		byEmail: make(map[string]identity.User),
	}
}

func (d *Directory) Register(u identity.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byEmail[strings.ToLower(strings.TrimSpace(u.Email))] = u
}

func (d *Directory) LookupByEmail(ctx context.Context, email string) (identity.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return identity.User{}, identity.ErrUserNotFound
	}
	return u, nil
}
