package jobdescriptions

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
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

	issuer, err := auth.NewIssuer("jd-test-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	pair, err := issuer.IssuePair("u1", "alice")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	r := gin.New()
	api := r.Group("/api/v1", middleware.Auth(issuer))
	NewHandler(NewService(NewMemoryRepo(), newFakeStore(), nil)).RegisterRoutes(api)
	return r, pair.Access
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return body, mw.FormDataContentType()
}

func send(r http.Handler, token string, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateFromMultipartFile(t *testing.T) {
	r, token := newTestRouter(t)

	body, contentType := multipartBody(t, map[string]string{"title": "Platform role", "raw_text": "ignored"},
		"role.docx", docxWith(t, "Build APIs", "Own uptime"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-descriptions", body)
	req.Header.Set("Content-Type", contentType)

	rec := send(r, token, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["raw_text"] != "Build APIs\nOwn uptime" {
		t.Fatalf("raw_text = %q", resp["raw_text"])
	}
	if resp["original_filename"] != "role.docx" || resp["title"] != "Platform role" {
		t.Fatalf("unexpected response %v", resp)
	}
	if _, leaked := resp["source_key"]; leaked {
		t.Fatalf("source key must not be serialized: %v", resp)
	}
}

func TestCreateFromJSON(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-descriptions", strings.NewReader(`{"raw_text":"We need Go"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := send(r, token, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"original_filename":null`) {
		t.Fatalf("expected null original_filename: %s", rec.Body.String())
	}
}

func TestCreateErrors(t *testing.T) {
	r, token := newTestRouter(t)

	tests := []struct {
		name     string
		fields   map[string]string
		fileName string
		data     []byte
		code     string
		message  string
	}{
		{"missing", map[string]string{"title": "x"}, "", nil, "validation_error", "Either a 'file' or 'raw_text' must be provided."},
		{"txt", nil, "notes.txt", []byte("hello"), "unsupported_file_type", "Unsupported file type. Please upload a PDF or DOCX file."},
		{"malformed pdf", nil, "broken.pdf", []byte("%PDF-nope"), "validation_error", "Error processing PDF file: "},
		{"blank", map[string]string{"raw_text": "   "}, "", nil, "empty_content", "Could not extract text from file or no text provided."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.fields, tt.fileName, tt.data)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/job-descriptions", body)
			req.Header.Set("Content-Type", contentType)

			rec := send(r, token, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != tt.code || !strings.HasPrefix(resp.Error.Message, tt.message) {
				t.Fatalf("got %+v", resp.Error)
			}
		})
	}
}

func TestGetForeignIsNotFound(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job-descriptions/42", nil)
	rec := send(r, token, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
