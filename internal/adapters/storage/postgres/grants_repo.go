package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/caregivers"
)

// access_grants: unique (baby_id, user_id).
type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

func (r *GrantsRepo) Create(ctx context.Context, g caregivers.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_grants (
			id, baby_id, user_id, role, granted_at, granted_by
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		g.ID,
		g.BabyID,
		g.UserID,
		string(g.Role),
		g.GrantedAt,
		toNullString(g.GrantedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return caregivers.ErrDuplicateGrant
		}
		return err
	}
	return nil
}

func (r *GrantsRepo) GetByBabyAndUser(ctx context.Context, babyID, userID string) (caregivers.Grant, error) {
	babyID = strings.TrimSpace(babyID)
	userID = strings.TrimSpace(userID)
	if babyID == "" || userID == "" {
		return caregivers.Grant{}, caregivers.ErrGrantNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, baby_id, user_id, role, granted_at, granted_by
		FROM access_grants
		WHERE baby_id = $1 AND user_id = $2
	`, babyID, userID)

	return scanGrant(row)
}

func (r *GrantsRepo) ListByBaby(ctx context.Context, babyID string) ([]caregivers.Grant, error) {
	babyID = strings.TrimSpace(babyID)
	if babyID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, baby_id, user_id, role, granted_at, granted_by
		FROM access_grants
		WHERE baby_id = $1
		ORDER BY granted_at ASC
	`, babyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGrants(rows)
}

func (r *GrantsRepo) ListByUser(ctx context.Context, userID string) ([]caregivers.Grant, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, baby_id, user_id, role, granted_at, granted_by
		FROM access_grants
		WHERE user_id = $1
		ORDER BY granted_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGrants(rows)
}

func (r *GrantsRepo) Delete(ctx context.Context, babyID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM access_grants
		WHERE baby_id = $1 AND user_id = $2
	`, babyID, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return caregivers.ErrGrantNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row rowScanner) (caregivers.Grant, error) {
	var g caregivers.Grant
	var role string
	var grantedBy sql.NullString

	if err := row.Scan(
		&g.ID,
		&g.BabyID,
		&g.UserID,
		&role,
		&g.GrantedAt,
		&grantedBy,
	); err != nil {
		if err == sql.ErrNoRows {
			return caregivers.Grant{}, caregivers.ErrGrantNotFound
		}
		return caregivers.Grant{}, err
	}

	g.Role = caregivers.Role(role)
	if grantedBy.Valid {
		s := grantedBy.String
		g.GrantedBy = &s
	}
	return g, nil
}

func scanGrants(rows *sql.Rows) ([]caregivers.Grant, error) {
	out := make([]caregivers.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
