package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		promptShowSystem = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExtractRejectsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(path, []byte("Go engineer"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := execute(t, "extract", path); err == nil || !strings.Contains(err.Error(), "expected .pdf or .docx") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestPromptRendersProfileAndJD(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.json")
	jdPath := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(profilePath, []byte(`{"full_name":"Ada Lovelace","skills":[{"name":"Go"}]}`), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if err := os.WriteFile(jdPath, []byte("Senior Go engineer, distributed systems"), 0o600); err != nil {
		t.Fatalf("write jd: %v", err)
	}

	out, err := execute(t, "prompt", "--profile", profilePath, "--jd", jdPath)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !strings.Contains(out, "Ada Lovelace") || !strings.Contains(out, "Senior Go engineer, distributed systems") {
		t.Fatalf("prompt missing inputs:\n%s", out)
	}
}

func TestPromptRejectsBadProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.json")
	jdPath := filepath.Join(dir, "jd.txt")
	_ = os.WriteFile(profilePath, []byte(`not json`), 0o600)
	_ = os.WriteFile(jdPath, []byte("jd"), 0o600)

	if _, err := execute(t, "prompt", "--profile", profilePath, "--jd", jdPath); err == nil {
		t.Fatalf("expected error for invalid profile JSON")
	}
}
