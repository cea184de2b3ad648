package identity

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// User es una entrada del directorio: id estable y email registrado.
type User struct {
	ID    string
	Email string
}

// Directory resuelve emails a cuentas existentes. El emisor de
// invitaciones lo usa para decidir entre otorgar el grant directo o
// acuñar un token de invitación compartible.
type Directory interface {
	LookupByEmail(ctx context.Context, email string) (User, error)
}
