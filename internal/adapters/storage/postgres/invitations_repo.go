package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/invitations"
)

// invitations: unique (token).
type InvitationsRepo struct {
	db *sql.DB
}

func NewInvitationsRepo(db *sql.DB) *InvitationsRepo {
	return &InvitationsRepo{db: db}
}

func (r *InvitationsRepo) Create(ctx context.Context, inv invitations.Invitation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (
			id, baby_id, invited_email, invited_by,
			token, status,
			created_at, expires_at, accepted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		inv.ID,
		inv.BabyID,
		inv.InvitedEmail,
		inv.InvitedBy,
		inv.Token,
		string(inv.Status),
		inv.CreatedAt,
		inv.ExpiresAt,
		toNullTime(inv.AcceptedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return invitations.ErrDuplicateToken
		}
		return err
	}
	return nil
}

func (r *InvitationsRepo) Update(ctx context.Context, inv invitations.Invitation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = $2, accepted_at = $3
		WHERE id = $1
	`,
		inv.ID,
		string(inv.Status),
		toNullTime(inv.AcceptedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return invitations.ErrInvitationNotFound
	}
	return nil
}

func (r *InvitationsRepo) GetByID(ctx context.Context, id string) (invitations.Invitation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return invitations.Invitation{}, invitations.ErrInvitationNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, baby_id, invited_email, invited_by,
		       token, status, created_at, expires_at, accepted_at
		FROM invitations
		WHERE id = $1
	`, id)

	return scanInvitation(row)
}

func (r *InvitationsRepo) GetByToken(ctx context.Context, token string) (invitations.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return invitations.Invitation{}, invitations.ErrInvitationNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, baby_id, invited_email, invited_by,
		       token, status, created_at, expires_at, accepted_at
		FROM invitations
		WHERE token = $1
	`, token)

	return scanInvitation(row)
}

func (r *InvitationsRepo) ListByBaby(ctx context.Context, babyID string) ([]invitations.Invitation, error) {
	babyID = strings.TrimSpace(babyID)
	if babyID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, baby_id, invited_email, invited_by,
		       token, status, created_at, expires_at, accepted_at
		FROM invitations
		WHERE baby_id = $1
		ORDER BY created_at DESC
	`, babyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func (r *InvitationsRepo) FindPendingByBabyEmail(ctx context.Context, babyID, email string) ([]invitations.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, baby_id, invited_email, invited_by,
		       token, status, created_at, expires_at, accepted_at
		FROM invitations
		WHERE baby_id = $1
		  AND invited_email = $2
		  AND status = 'pending'
		ORDER BY created_at ASC
	`, babyID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func (r *InvitationsRepo) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'expired'
		WHERE status = 'pending' AND expires_at < $1
	`, now)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanInvitation(row rowScanner) (invitations.Invitation, error) {
	var inv invitations.Invitation
	var status string
	var acceptedAt sql.NullTime

	if err := row.Scan(
		&inv.ID,
		&inv.BabyID,
		&inv.InvitedEmail,
		&inv.InvitedBy,
		&inv.Token,
		&status,
		&inv.CreatedAt,
		&inv.ExpiresAt,
		&acceptedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return invitations.Invitation{}, invitations.ErrInvitationNotFound
		}
		return invitations.Invitation{}, err
	}

	inv.Status = invitations.Status(status)
	if acceptedAt.Valid {
		t := acceptedAt.Time
		inv.AcceptedAt = &t
	}
	return inv, nil
}

func scanInvitations(rows *sql.Rows) ([]invitations.Invitation, error) {
	out := make([]invitations.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
