package profiles

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `user_id, full_name, phone_number, email, linkedin_url, github_url, portfolio_url, location, summary, updated_at`

func (r *PGRepo) EnsureProfile(ctx context.Context, userID string) (Profile, error) {
	if _, err := r.DB.ExecContext(ctx,
		`INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return Profile{}, err
	}
	return r.GetProfile(ctx, userID)
}

func (r *PGRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	var p Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.PhoneNumber,
		&p.Email,
		&p.LinkedInURL,
		&p.GitHubURL,
		&p.PortfolioURL,
		&p.Location,
		&p.Summary,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PGRepo) UpdateProfile(ctx context.Context, p Profile) (Profile, error) {
	const query = `
UPDATE profiles
SET full_name = $2, phone_number = $3, email = $4, linkedin_url = $5, github_url = $6,
    portfolio_url = $7, location = $8, summary = $9, updated_at = NOW()
WHERE user_id = $1
RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		p.UserID,
		p.FullName,
		p.PhoneNumber,
		p.Email,
		p.LinkedInURL,
		p.GitHubURL,
		p.PortfolioURL,
		p.Location,
		p.Summary,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PGRepo) ListEntries(ctx context.Context, userID string, kind Kind) ([]Entry, error) {
	query := `SELECT id, user_id, kind, payload, created_at FROM profile_entries WHERE user_id = $1`
	args := []any{userID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) CreateEntry(ctx context.Context, e Entry) (Entry, error) {
	const query = `
INSERT INTO profile_entries (user_id, kind, payload)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	if err := r.DB.QueryRowContext(ctx, query, e.UserID, string(e.Kind), string(e.Payload)).
		Scan(&e.ID, &e.CreatedAt); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (r *PGRepo) GetEntry(ctx context.Context, userID string, kind Kind, id int64) (Entry, error) {
	const query = `
SELECT id, user_id, kind, payload, created_at
FROM profile_entries
WHERE id = $1 AND user_id = $2 AND kind = $3`
	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id, userID, string(kind)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *PGRepo) UpdateEntry(ctx context.Context, e Entry) (Entry, error) {
	const query = `
UPDATE profile_entries
SET payload = $4
WHERE id = $1 AND user_id = $2 AND kind = $3
RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query, e.ID, e.UserID, string(e.Kind), string(e.Payload)).Scan(&e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *PGRepo) DeleteEntry(ctx context.Context, userID string, kind Kind, id int64) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM profile_entries WHERE id = $1 AND user_id = $2 AND kind = $3`, id, userID, string(kind))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_entries WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e       Entry
		kind    string
		payload []byte
	)
	if err := row.Scan(&e.ID, &e.UserID, &kind, &payload, &e.CreatedAt); err != nil {
		return Entry{}, err
	}
	e.Kind = Kind(kind)
	e.Payload = payload
	return e, nil
}

var _ Repo = (*PGRepo)(nil)
