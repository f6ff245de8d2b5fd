package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/shared/auth"
	"resume-composer/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewIssuer("profiles-test-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	pair, err := issuer.IssuePair("u1", "alice")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	r := gin.New()
	api := r.Group("/api/v1", middleware.Auth(issuer))
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(api)
	return r, pair.Access
}

func do(r http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerSkillLifecycle(t *testing.T) {
	r, token := newTestRouter(t)

	rec := do(r, token, http.MethodPost, "/api/v1/skills", `{"name":"Go"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["name"] != "Go" || created["id"] == nil {
		t.Fatalf("unexpected body %v", created)
	}

	rec = do(r, token, http.MethodPatch, "/api/v1/skills/1", `{"name":"Golang"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Golang") {
		t.Fatalf("patch status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(r, token, http.MethodGet, "/api/v1/profile", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"skills":[{"id":1,"name":"Golang"}]`) {
		t.Fatalf("profile status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(r, token, http.MethodDelete, "/api/v1/skills/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(r, token, http.MethodGet, "/api/v1/skills/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestHandlerValidationDetails(t *testing.T) {
	r, token := newTestRouter(t)

	rec := do(r, token, http.MethodPost, "/api/v1/education", `{"institution_name":"MIT"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, field := range []string{"degree", "start_date"} {
		if !strings.Contains(rec.Body.String(), field) {
			t.Fatalf("expected %q in details: %s", field, rec.Body.String())
		}
	}
}

func TestHandlerRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, "", http.MethodGet, "/api/v1/profile", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerNonNumericIDIsNotFound(t *testing.T) {
	r, token := newTestRouter(t)

	rec := do(r, token, http.MethodGet, "/api/v1/projects/abc", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
