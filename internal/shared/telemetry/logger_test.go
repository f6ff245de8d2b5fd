package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("compose.persist_failed", map[string]any{"user_id": "u1", "msg": "ignored"})

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", line, err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", entry["level"])
	}
	if entry["msg"] != "compose.persist_failed" {
		t.Fatalf("field overrode msg: %v", entry["msg"])
	}
	if entry["user_id"] != "u1" {
		t.Fatalf("expected user_id field, got %v", entry["user_id"])
	}
}
