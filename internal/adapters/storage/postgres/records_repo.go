package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_records (
			id, baby_id, kind, occurred_at, note, amount, recorded_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.ID,
		rec.BabyID,
		string(rec.Kind),
		rec.OccurredAt,
		rec.Note,
		rec.Amount,
		rec.RecordedBy,
		rec.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.Record{}, records.ErrRecordNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, baby_id, kind, occurred_at, note, amount, recorded_by, created_at
		FROM care_records
		WHERE id = $1
	`, id)

	return scanRecord(row)
}

func (r *RecordsRepo) ListByBaby(ctx context.Context, babyID string, filter records.ListFilter) ([]records.Record, error) {
	babyID = strings.TrimSpace(babyID)
	if babyID == "" {
		return nil, nil
	}

	q := `
		SELECT id, baby_id, kind, occurred_at, note, amount, recorded_by, created_at
		FROM care_records
		WHERE baby_id = $1
	`
	args := []any{babyID}

	if filter.Kind != "" {
		q += ` AND kind = $2`
		args = append(args, string(filter.Kind))
	}
	q += ` ORDER BY occurred_at DESC`
	if filter.Limit > 0 {
		q += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(row rowScanner) (records.Record, error) {
	var rec records.Record
	var kind string

	if err := row.Scan(
		&rec.ID,
		&rec.BabyID,
		&kind,
		&rec.OccurredAt,
		&rec.Note,
		&rec.Amount,
		&rec.RecordedBy,
		&rec.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return records.Record{}, records.ErrRecordNotFound
		}
		return records.Record{}, err
	}

	rec.Kind = records.Kind(kind)
	return rec, nil
}
