package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCommand_JSONToFile(t *testing.T) {
	f := fixtureWithSession(t)
	out := filepath.Join(t.TempDir(), "session.json")

	if err := runCommand(t, f, "export", "--format", "json", "--output", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["sessionId"] != "sess-cmd" {
		t.Errorf("sessionId = %v, want sess-cmd", decoded["sessionId"])
	}
}

func TestExportCommand_MarkdownToFile(t *testing.T) {
	f := fixtureWithSession(t)
	out := filepath.Join(t.TempDir(), "session.md")

	if err := runCommand(t, f, "export", "-f", "md", "-o", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "# Session sess-cmd") {
		t.Errorf("markdown missing session header:\n%s", content)
	}
	if !strings.Contains(content, "add a greeting") {
		t.Errorf("markdown missing prompt text:\n%s", content)
	}
}

func TestExportCommand_UnsupportedFormat(t *testing.T) {
	f := fixtureWithSession(t)
	err := runCommand(t, f, "export", "--format", "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error = %v, want unsupported-format", err)
	}
}
