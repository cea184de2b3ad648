package caregivers

import (
	"context"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byPair map[[2]string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byPair: map[[2]string]Grant{}}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	k := [2]string{g.BabyID, g.UserID}
	if _, ok := r.byPair[k]; ok {
		return ErrDuplicateGrant
	}
	r.byPair[k] = g
	return nil
}

func (r *testRepo) GetByBabyAndUser(ctx context.Context, babyID, userID string) (Grant, error) {
	g, ok := r.byPair[[2]string{babyID, userID}]
	if !ok {
		return Grant{}, ErrGrantNotFound
	}
	return g, nil
}

func (r *testRepo) ListByBaby(ctx context.Context, babyID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for k, g := range r.byPair {
		if k[0] == babyID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for k, g := range r.byPair {
		if k[1] == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, babyID, userID string) error {
	k := [2]string{babyID, userID}
	if _, ok := r.byPair[k]; !ok {
		return ErrGrantNotFound
	}
	delete(r.byPair, k)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_CreateOwnerGrant_SetsOwnerRoleAndNilGrantedBy(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, err := svc.CreateOwnerGrant(context.Background(), "baby-1", "owner-1")
	if err != nil {
		t.Fatalf("CreateOwnerGrant error: %v", err)
	}
	if g.Role != RoleOwner {
		t.Fatalf("expected role owner, got %s", g.Role)
	}
	if g.GrantedBy != nil {
		t.Fatalf("expected nil GrantedBy for the original owner grant")
	}
	if g.GrantedAt != now {
		t.Fatalf("expected GrantedAt to be now")
	}
}

func TestService_GrantCaregiver_DuplicatePairFailsWithAlreadyGranted(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.GrantCaregiver(context.Background(), "baby-1", "user-2", "owner-1"); err != nil {
		t.Fatalf("first grant error: %v", err)
	}
	_, err := svc.GrantCaregiver(context.Background(), "baby-1", "user-2", "owner-1")
	if err != ErrAlreadyGranted {
		t.Fatalf("expected ErrAlreadyGranted, got %v", err)
	}
}

func TestService_Revoke_OwnerRemovesCaregiver(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.CreateOwnerGrant(context.Background(), "baby-1", "owner-1"); err != nil {
		t.Fatalf("owner grant error: %v", err)
	}
	if _, err := svc.GrantCaregiver(context.Background(), "baby-1", "user-2", "owner-1"); err != nil {
		t.Fatalf("caregiver grant error: %v", err)
	}

	if err := svc.Revoke(context.Background(), "owner-1", "baby-1", "user-2"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	ok, err := svc.Guard().CanAct(context.Background(), "user-2", "baby-1")
	if err != nil {
		t.Fatalf("CanAct error: %v", err)
	}
	if ok {
		t.Fatalf("expected CanAct false after revoke")
	}
}

func TestService_Revoke_CaregiverIsForbidden(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, _ = svc.CreateOwnerGrant(context.Background(), "baby-1", "owner-1")
	_, _ = svc.GrantCaregiver(context.Background(), "baby-1", "user-2", "owner-1")
	_, _ = svc.GrantCaregiver(context.Background(), "baby-1", "user-3", "owner-1")

	err := svc.Revoke(context.Background(), "user-2", "baby-1", "user-3")
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for caregiver actor, got %v", err)
	}
}

func TestService_Revoke_OwnerGrantIsNotRemovable(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, _ = svc.CreateOwnerGrant(context.Background(), "baby-1", "owner-1")

	err := svc.Revoke(context.Background(), "owner-1", "baby-1", "owner-1")
	if err != ErrCannotRemoveOwner {
		t.Fatalf("expected ErrCannotRemoveOwner, got %v", err)
	}

	// El owner sigue pudiendo actuar: nunca se queda un perfil sin owner.
	ok, _ := svc.Guard().CanAct(context.Background(), "owner-1", "baby-1")
	if !ok {
		t.Fatalf("expected owner to keep access")
	}
}

func TestService_Revoke_MissingTargetIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, _ = svc.CreateOwnerGrant(context.Background(), "baby-1", "owner-1")

	err := svc.Revoke(context.Background(), "owner-1", "baby-1", "ghost")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ListByBaby_RequiresOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, _ = svc.CreateOwnerGrant(context.Background(), "baby-1", "owner-1")
	_, _ = svc.GrantCaregiver(context.Background(), "baby-1", "user-2", "owner-1")

	if _, err := svc.ListByBaby(context.Background(), "user-2", "baby-1"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for caregiver, got %v", err)
	}

	items, err := svc.ListByBaby(context.Background(), "owner-1", "baby-1")
	if err != nil {
		t.Fatalf("ListByBaby error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(items))
	}
}
