package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoListTemplatesActiveOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM resume_templates WHERE is_active ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "description", "primary_color", "secondary_color", "is_active", "created_at"}).
			AddRow(int64(1), "Modern Minimal", "minimal", "Clean", "#1e88e5", "#43a047", true, now))

	repo := &PGRepo{DB: db}
	list, err := repo.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Modern Minimal" {
		t.Fatalf("unexpected templates %+v", list)
	}
}

func TestPGRepoCreateMapsForeignKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("INSERT INTO resumes").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "resumes_template_id_fkey"})

	repo := &PGRepo{DB: db}
	tpl := int64(44)
	_, err = repo.Create(context.Background(), Resume{UserID: "u1", TemplateID: &tpl, Status: StatusDraft, FirstName: "A", LastName: "B"})
	if err != ErrUnknownTemplate {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestPGRepoGetByIDScansNullables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM resumes WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(5), "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "template_id", "title", "status", "first_name", "last_name", "email", "phone", "location", "summary", "created_at", "updated_at"}).
			AddRow(int64(5), "u1", nil, nil, "draft", "Ada", "Lovelace", "", "", "", "", now, now))

	repo := &PGRepo{DB: db}
	r, err := repo.GetByID(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if r.TemplateID != nil || r.Title != nil || r.FirstName != "Ada" {
		t.Fatalf("unexpected resume %+v", r)
	}
}
