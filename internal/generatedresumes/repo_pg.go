package generatedresumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a generated resume.
func (r *PGRepo) Create(ctx context.Context, resume GeneratedResume) (GeneratedResume, error) {
	const query = `
INSERT INTO generated_resumes (user_id, job_description_id, generated_content)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		resume.UserID,
		resume.JobDescriptionID,
		resume.GeneratedContent,
	).Scan(&resume.ID, &resume.CreatedAt)
	if err != nil {
		return GeneratedResume{}, err
	}
	return resume, nil
}

// GetByID returns a generated resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID string, id int64) (GeneratedResume, error) {
	const query = `
SELECT id, user_id, job_description_id, generated_content, created_at
FROM generated_resumes
WHERE id = $1 AND user_id = $2`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	return resume, nil
}

// ListByUser lists generated resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, jobDescriptionID *int64) ([]GeneratedResume, error) {
	query := `
SELECT id, user_id, job_description_id, generated_content, created_at
FROM generated_resumes
WHERE user_id = $1`
	args := []any{userID}
	if jobDescriptionID != nil {
		query += ` AND job_description_id = $2`
		args = append(args, *jobDescriptionID)
	}
	query += `
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GeneratedResume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateContent(ctx context.Context, userID string, id int64, content string) (GeneratedResume, error) {
	const query = `
UPDATE generated_resumes
SET generated_content = $3
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, job_description_id, generated_content, created_at`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, id, userID, content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	return resume, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM generated_resumes WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *PGRepo) DeleteByJobDescription(ctx context.Context, userID string, jobDescriptionID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM generated_resumes WHERE user_id = $1 AND job_description_id = $2`, userID, jobDescriptionID)
	return err
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM generated_resumes WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (GeneratedResume, error) {
	var resume GeneratedResume
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.JobDescriptionID,
		&resume.GeneratedContent,
		&resume.CreatedAt,
	)
	return resume, err
}

var _ Repo = (*PGRepo)(nil)
