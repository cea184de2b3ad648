package odin

import (
	"context"
	"strings"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/identity"
)

// Directory implementa identity.Directory usando Odin.
type Directory struct {
	client *Client
}

func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) LookupByEmail(ctx context.Context, email string) (identity.User, error) {
	if d == nil || d.client == nil {
		return identity.User{}, ErrOdinNotConfigured
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return identity.User{}, identity.ErrUserNotFound
	}
	return d.client.LookupUserByEmail(ctx, email)
}
