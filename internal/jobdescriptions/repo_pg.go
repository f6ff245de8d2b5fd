package jobdescriptions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const checkViolation = "23514"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, title, original_filename, raw_text, source_key, uploaded_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, jd JobDescription) (JobDescription, error) {
	const query = `
INSERT INTO job_descriptions (user_id, title, original_filename, raw_text, source_key)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, uploaded_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		jd.UserID,
		nullString(jd.Title),
		nullString(jd.OriginalFilename),
		jd.RawText,
		sql.NullString{String: jd.SourceKey, Valid: jd.SourceKey != ""},
	).Scan(&jd.ID, &jd.UploadedAt, &jd.UpdatedAt)
	if err != nil {
		return JobDescription{}, mapConstraint(err)
	}
	return jd, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string, id int64) (JobDescription, error) {
	query := `SELECT ` + selectColumns + ` FROM job_descriptions WHERE id = $1 AND user_id = $2`
	jd, err := scanJobDescription(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobDescription{}, ErrNotFound
		}
		return JobDescription{}, err
	}
	return jd, nil
}

// ListByUser lists job descriptions ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]JobDescription, error) {
	query := `SELECT ` + selectColumns + ` FROM job_descriptions WHERE user_id = $1 ORDER BY uploaded_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobDescription, 0)
	for rows.Next() {
		jd, err := scanJobDescription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, jd)
	}
	return out, rows.Err()
}

func (r *PGRepo) Titles(ctx context.Context, userID string, ids []int64) (map[int64]*string, error) {
	out := make(map[int64]*string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const query = `SELECT id, title FROM job_descriptions WHERE user_id = $1 AND id = ANY($2)`
	rows, err := r.DB.QueryContext(ctx, query, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			title sql.NullString
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		out[id] = stringPtr(title)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, jd JobDescription) (JobDescription, error) {
	query := `
UPDATE job_descriptions
SET title = $3, raw_text = $4, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING ` + selectColumns
	out, err := scanJobDescription(r.DB.QueryRowContext(ctx, query, jd.ID, jd.UserID, nullString(jd.Title), jd.RawText))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobDescription{}, ErrNotFound
		}
		return JobDescription{}, mapConstraint(err)
	}
	return out, nil
}

// Delete removes the record; its generated resumes go with it through ON DELETE CASCADE.
func (r *PGRepo) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM job_descriptions WHERE id = $1 AND user_id = $2`, id, userID)
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
	_, err := r.DB.ExecContext(ctx, `DELETE FROM job_descriptions WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJobDescription(row rowScanner) (JobDescription, error) {
	var (
		jd        JobDescription
		title     sql.NullString
		original  sql.NullString
		sourceKey sql.NullString
	)
	if err := row.Scan(
		&jd.ID,
		&jd.UserID,
		&title,
		&original,
		&jd.RawText,
		&sourceKey,
		&jd.UploadedAt,
		&jd.UpdatedAt,
	); err != nil {
		return JobDescription{}, err
	}
	jd.Title = stringPtr(title)
	jd.OriginalFilename = stringPtr(original)
	if sourceKey.Valid {
		jd.SourceKey = sourceKey.String
	}
	return jd, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// mapConstraint turns the non-blank raw_text CHECK into ErrEmptyContent.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
		return ErrEmptyContent
	}
	return err
}

var _ Repo = (*PGRepo)(nil)
