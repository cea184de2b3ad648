package invitations

import (
	"strings"
	"testing"
	"time"
)

func TestInvitation_IsExpired(t *testing.T) {
	exp := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
	inv := Invitation{Status: StatusPending, ExpiresAt: exp}

	if inv.IsExpired(exp.Add(-time.Second)) {
		t.Fatalf("not expired before the deadline")
	}
	if inv.IsExpired(exp) {
		t.Fatalf("the deadline itself is still acceptable")
	}
	if !inv.IsExpired(exp.Add(time.Second)) {
		t.Fatalf("expired past the deadline")
	}

}

func TestInvitation_IsAcceptable(t *testing.T) {
	exp := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
	now := exp.Add(-time.Hour)

	inv := Invitation{Status: StatusPending, ExpiresAt: exp}
	if !inv.IsAcceptable(now) {
		t.Fatalf("fresh pending must be acceptable")
	}
	if inv.IsAcceptable(exp.Add(time.Second)) {
		t.Fatalf("stale pending must not be acceptable")
	}

	for _, s := range []Status{StatusAccepted, StatusCancelled, StatusExpired} {
		inv.Status = s
		if inv.IsAcceptable(now) {
			t.Fatalf("status %s must not be acceptable", s)
		}
	}
}

func TestNewToken_URLSafeAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := newToken()
		if err != nil {
			t.Fatalf("newToken error: %v", err)
		}
		if len(tok) < 40 {
			t.Fatalf("token too short: %d chars", len(tok))
		}
		if strings.ContainsAny(tok, "+/=") {
			t.Fatalf("token must be URL-safe, got %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token")
		}
		seen[tok] = true
	}
}
