package resumes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type PGRepo struct {
	DB *sql.DB
}

const templateColumns = `id, name, category, description, primary_color, secondary_color, is_active, created_at`

func (r *PGRepo) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+templateColumns+` FROM resume_templates WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetTemplate(ctx context.Context, id int64) (Template, error) {
	t, err := scanTemplate(r.DB.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM resume_templates WHERE id = $1 AND is_active`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return t, nil
}

const resumeColumns = `id, user_id, template_id, title, status, first_name, last_name, email, phone, location, summary, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	query := `
INSERT INTO resumes (user_id, template_id, title, status, first_name, last_name, email, phone, location, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + resumeColumns
	out, err := scanResume(r.DB.QueryRowContext(ctx, query,
		resume.UserID,
		nullInt64(resume.TemplateID),
		nullString(resume.Title),
		resume.Status,
		resume.FirstName,
		resume.LastName,
		resume.Email,
		resume.Phone,
		resume.Location,
		resume.Summary,
	))
	if err != nil {
		return Resume{}, mapForeignKey(err)
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string, id int64) (Resume, error) {
	out, err := scanResume(r.DB.QueryRowContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return out, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) (Resume, error) {
	query := `
UPDATE resumes
SET template_id = $3, title = $4, status = $5, first_name = $6, last_name = $7,
    email = $8, phone = $9, location = $10, summary = $11, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING ` + resumeColumns
	out, err := scanResume(r.DB.QueryRowContext(ctx, query,
		resume.ID,
		resume.UserID,
		nullInt64(resume.TemplateID),
		nullString(resume.Title),
		resume.Status,
		resume.FirstName,
		resume.LastName,
		resume.Email,
		resume.Phone,
		resume.Location,
		resume.Summary,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, mapForeignKey(err)
	}
	return out, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
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
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Description, &t.PrimaryColor, &t.SecondaryColor, &t.IsActive, &t.CreatedAt)
	return t, err
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume     Resume
		templateID sql.NullInt64
		title      sql.NullString
	)
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&templateID,
		&title,
		&resume.Status,
		&resume.FirstName,
		&resume.LastName,
		&resume.Email,
		&resume.Phone,
		&resume.Location,
		&resume.Summary,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if templateID.Valid {
		id := templateID.Int64
		resume.TemplateID = &id
	}
	if title.Valid {
		s := title.String
		resume.Title = &s
	}
	return resume, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func mapForeignKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrUnknownTemplate
	}
	return err
}

var _ Repo = (*PGRepo)(nil)
