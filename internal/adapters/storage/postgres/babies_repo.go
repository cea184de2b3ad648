package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/babies"
)

type BabiesRepo struct {
	db *sql.DB
}

func NewBabiesRepo(db *sql.DB) *BabiesRepo {
	return &BabiesRepo{db: db}
}

func (r *BabiesRepo) Create(ctx context.Context, b babies.Baby) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO babies (
			id, name, sex, birth_date, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		b.ID,
		b.Name,
		string(b.Sex),
		toNullTime(b.BirthDate),
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BabiesRepo) GetByID(ctx context.Context, id string) (babies.Baby, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return babies.Baby{}, babies.ErrBabyNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, sex, birth_date, notes, created_at, updated_at
		FROM babies
		WHERE id = $1
	`, id)

	return scanBaby(row)
}

func (r *BabiesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM babies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return babies.ErrBabyNotFound
	}
	return nil
}

func (r *BabiesRepo) ListByIDs(ctx context.Context, ids []string) ([]babies.Baby, error) {
	if len(ids) == 0 {
		return []babies.Baby{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, sex, birth_date, notes, created_at, updated_at
		FROM babies
		WHERE id = ANY($1)
		ORDER BY created_at ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]babies.Baby, 0, len(ids))
	for rows.Next() {
		b, err := scanBaby(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBaby(row rowScanner) (babies.Baby, error) {
	var b babies.Baby
	var sex string
	var birthDate sql.NullTime

	if err := row.Scan(
		&b.ID,
		&b.Name,
		&sex,
		&birthDate,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return babies.Baby{}, babies.ErrBabyNotFound
		}
		return babies.Baby{}, err
	}

	b.Sex = babies.Sex(sex)
	if birthDate.Valid {
		t := birthDate.Time
		b.BirthDate = &t
	}
	return b, nil
}
