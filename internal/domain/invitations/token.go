package invitations

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes: 32 bytes de entropía => 43 chars base64url.
const tokenBytes = 32

// newToken genera un token de portador no adivinable.
// base64 URL-safe sin padding para que viaje limpio en query params.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
