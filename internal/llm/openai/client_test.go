package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-composer/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/api/v1/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "  "}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.endpoint != DefaultBaseURL+"/chat/completions" {
		t.Fatalf("unexpected endpoint %q", client.endpoint)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("unexpected timeout %s", client.httpClient.Timeout)
	}
}

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	var got chatRequest
	var auth, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","model":"served-model","choices":[{"message":{"role":"assistant","content":"## Summary\nGreat fit."}},{"message":{"content":"second"}}]}`))
	})

	out, err := client.Complete(context.Background(), llm.Request{Model: "m", System: "sys", Prompt: "user prompt"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Content != "## Summary\nGreat fit." {
		t.Fatalf("expected first choice, got %q", out.Content)
	}
	if out.Model != "served-model" {
		t.Fatalf("unexpected model %q", out.Model)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if path != "/api/v1/chat/completions" {
		t.Fatalf("unexpected path %q", path)
	}
	if got.Model != "m" || len(got.Messages) != 2 {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != "sys" {
		t.Fatalf("unexpected system message %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "user prompt" {
		t.Fatalf("unexpected user message %+v", got.Messages[1])
	}
}

func TestCompleteReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"No auth credentials found","type":"auth"}}`))
	})

	_, err := client.Complete(context.Background(), llm.Request{Model: "m", Prompt: "p"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "No auth credentials found" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestCompleteNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.Complete(context.Background(), llm.Request{Model: "m", Prompt: "p"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "upstream down" {
		t.Fatalf("expected APIError with body, got %v", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), llm.Request{Model: "m", Prompt: "p"})
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestCompleteReturnsEmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"m","choices":[{"message":{"role":"assistant","content":""}}]}`))
	})

	got, err := client.Complete(context.Background(), llm.Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Content != "" || got.Model != "m" {
		t.Fatalf("unexpected completion %+v", got)
	}
}

func TestCompleteRequiresModel(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Complete(context.Background(), llm.Request{Prompt: "p"}); err == nil {
		t.Fatalf("expected error without model")
	}
}
