package babies

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Baby
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Baby{}}
}

func (r *testRepo) Create(ctx context.Context, b Baby) error {
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Baby, error) {
	b, ok := r.byID[id]
	if !ok {
		return Baby{}, ErrBabyNotFound
	}
	return b, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrBabyNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByIDs(ctx context.Context, ids []string) ([]Baby, error) {
	out := make([]Baby, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// testGrants registra los owner grants escritos y permite forzar fallas.
type testGrants struct {
	owners map[string]string // babyID -> userID
	fail   bool
}

func (g *testGrants) CreateOwnerGrant(ctx context.Context, babyID, userID string) error {
	if g.fail {
		return errors.New("grants: write failed")
	}
	g.owners[babyID] = userID
	return nil
}

func (g *testGrants) CanAct(ctx context.Context, userID, babyID string) (bool, error) {
	return g.owners[babyID] == userID, nil
}

func newBabiesService() (*Service, *testRepo, *testGrants) {
	repo := newTestRepo()
	grants := &testGrants{owners: map[string]string{}}
	return NewService(repo, grants, grants), repo, grants
}

func TestService_Create_WritesProfileAndOwnerGrant(t *testing.T) {
	svc, repo, grants := newBabiesService()

	bd := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	b, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "  Luna  ",
		Sex:       "female",
		BirthDate: &bd,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.Name != "Luna" {
		t.Fatalf("expected trimmed name, got %q", b.Name)
	}
	if b.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, ok := repo.byID[b.ID]; !ok {
		t.Fatalf("profile not persisted")
	}
	if grants.owners[b.ID] != "owner-1" {
		t.Fatalf("owner grant not written")
	}
}

func TestService_Create_DefaultsSexToUnknown(t *testing.T) {
	svc, _, _ := newBabiesService()

	b, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Max"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.Sex != SexUnknown {
		t.Fatalf("expected unknown sex, got %s", b.Sex)
	}

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Max", Sex: "otro"}); err != ErrInvalidInput {
		t.Fatalf("bad sex: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Create_FailsWholeIfGrantFails(t *testing.T) {
	svc, repo, grants := newBabiesService()
	grants.fail = true

	// Un perfil sin grant owner es inalcanzable: la operación falla entera
	// y la fila del perfil se compensa (no queda huérfana).
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Luna"}); err == nil {
		t.Fatalf("expected error when the owner grant cannot be written")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("profile row must be compensated away, got %d rows", len(repo.byID))
	}
}

func TestService_Get_GuardedByGrant(t *testing.T) {
	svc, _, _ := newBabiesService()
	ctx := context.Background()

	b, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Luna"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.Get(ctx, "owner-1", b.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != b.ID {
		t.Fatalf("expected profile %s, got %s", b.ID, got.ID)
	}

	if _, err := svc.Get(ctx, "stranger", b.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_NameOf(t *testing.T) {
	svc, _, _ := newBabiesService()

	b, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Luna"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	name, err := svc.NameOf(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("NameOf error: %v", err)
	}
	if name != "Luna" {
		t.Fatalf("expected Luna, got %q", name)
	}
}
