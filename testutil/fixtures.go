package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ClaudeDirFixture lays out a fake Claude home directory: a projects dir
// with one transcript for the given project path, and a file-history dir
// with the named backup files.
type ClaudeDirFixture struct {
	BaseDir        string
	ProjectPath    string
	SessionID      string
	TranscriptPath string
}

// CreateClaudeDir creates the fixture skeleton under a temp directory.
func CreateClaudeDir(t *testing.T, projectPath, sessionID string) *ClaudeDirFixture {
	t.Helper()
	base := t.TempDir()

	encoded := strings.ReplaceAll(filepath.ToSlash(filepath.Clean(projectPath)), "/", "-")
	projectDir := filepath.Join(base, "projects", encoded)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	return &ClaudeDirFixture{
		BaseDir:        base,
		ProjectPath:    projectPath,
		SessionID:      sessionID,
		TranscriptPath: filepath.Join(projectDir, sessionID+".jsonl"),
	}
}

// WriteTranscript writes the transcript file from raw JSONL lines.
func (f *ClaudeDirFixture) WriteTranscript(t *testing.T, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(f.TranscriptPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write transcript: %v", err)
	}
}

// WriteBackups creates empty backup files in the session's backup store.
func (f *ClaudeDirFixture) WriteBackups(t *testing.T, names ...string) {
	t.Helper()
	dir := filepath.Join(f.BaseDir, "file-history", f.SessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create backup dir: %v", err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("backup content of "+name), 0644); err != nil {
			t.Fatalf("Failed to write backup %s: %v", name, err)
		}
	}
}

// UserLine renders a plain-text user event as a transcript line.
func UserLine(uuid, parent, sessionID, cwd, text string) string {
	parentJSON := "null"
	if parent != "" {
		parentJSON = fmt.Sprintf("%q", parent)
	}
	return fmt.Sprintf(
		`{"type":"user","uuid":%q,"parentUuid":%s,"sessionId":%q,"cwd":%q,"timestamp":"2025-06-01T12:00:00Z","message":{"role":"user","content":%q}}`,
		uuid, parentJSON, sessionID, cwd, text,
	)
}

// ToolResultLine renders a user event carrying an Edit tool result.
func ToolResultLine(uuid, parent, filePath, originalFile string) string {
	return fmt.Sprintf(
		`{"type":"user","uuid":%q,"parentUuid":%q,"message":{"role":"user","content":[{"type":"tool_result","content":"ok"}]},"toolUseResult":{"filePath":%q,"originalFile":%q}}`,
		uuid, parent, filePath, originalFile,
	)
}

// AssistantLine renders an assistant event invoking one tool.
func AssistantLine(uuid, parent, tool string) string {
	return fmt.Sprintf(
		`{"type":"assistant","uuid":%q,"parentUuid":%q,"message":{"role":"assistant","content":[{"type":"tool_use","name":%q,"input":{}}]}}`,
		uuid, parent, tool,
	)
}

// SnapshotLine renders a file-history-snapshot event tracking one file.
func SnapshotLine(messageID, path, backupFileName string, version int) string {
	return fmt.Sprintf(
		`{"type":"file-history-snapshot","messageId":%q,"snapshot":{"messageId":%q,"trackedFileBackups":{%q:{"backupFileName":%q,"version":%d,"backupTime":"2025-06-01T12:00:00Z"}}}}`,
		messageID, messageID, path, backupFileName, version,
	)
}
