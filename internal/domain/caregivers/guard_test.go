package caregivers

import (
	"context"
	"testing"
	"time"
)

func seedGuardRepo(t *testing.T) *testRepo {
	t.Helper()
	repo := newTestRepo()

	owner := Grant{ID: "g1", BabyID: "baby-1", UserID: "owner-1", Role: RoleOwner, GrantedAt: time.Now()}
	care := Grant{ID: "g2", BabyID: "baby-1", UserID: "user-2", Role: RoleCaregiver, GrantedAt: time.Now()}
	if err := repo.Create(context.Background(), owner); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if err := repo.Create(context.Background(), care); err != nil {
		t.Fatalf("seed caregiver: %v", err)
	}
	return repo
}

func TestGuard_CanAct_AnyRoleCounts(t *testing.T) {
	guard := NewGuard(seedGuardRepo(t))

	cases := []struct {
		userID string
		want   bool
	}{
		{"owner-1", true},
		{"user-2", true},
		{"stranger", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := guard.CanAct(context.Background(), tc.userID, "baby-1")
		if err != nil {
			t.Fatalf("CanAct(%q) error: %v", tc.userID, err)
		}
		if got != tc.want {
			t.Fatalf("CanAct(%q) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}

func TestGuard_CanManageGrants_OnlyOwner(t *testing.T) {
	guard := NewGuard(seedGuardRepo(t))

	cases := []struct {
		userID string
		want   bool
	}{
		{"owner-1", true},
		{"user-2", false},
		{"stranger", false},
	}
	for _, tc := range cases {
		got, err := guard.CanManageGrants(context.Background(), tc.userID, "baby-1")
		if err != nil {
			t.Fatalf("CanManageGrants(%q) error: %v", tc.userID, err)
		}
		if got != tc.want {
			t.Fatalf("CanManageGrants(%q) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}
