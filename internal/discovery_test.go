package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEncodeProjectPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/Users/dev/my-project", "-Users-dev-my-project"},
		{"/work/a/b", "-work-a-b"},
		{"/work/a/b/", "-work-a-b"},
	}

	for _, tt := range tests {
		if got := EncodeProjectPath(tt.path); got != tt.want {
			t.Errorf("EncodeProjectPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDecodeProjectDir(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"-work-a-b", "/work/a/b"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := DecodeProjectDir(tt.dir); got != tt.want {
			t.Errorf("DecodeProjectDir(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

// writeProjectDir lays out a fake projects dir with the given file names for
// one project and returns the projects dir root.
func writeProjectDir(t *testing.T, projectPath string, names ...string) string {
	t.Helper()
	projectsDir := t.TempDir()
	dir := filepath.Join(projectsDir, EncodeProjectPath(projectPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return projectsDir
}

func TestFindTranscripts(t *testing.T) {
	projectsDir := writeProjectDir(t, "/work/project",
		"sess-a.jsonl",
		"sess-b.jsonl",
		"agent-123.jsonl",
		"notes.txt",
	)

	transcripts, err := FindTranscripts(projectsDir, "/work/project")
	if err != nil {
		t.Fatalf("FindTranscripts() error: %v", err)
	}
	if len(transcripts) != 2 {
		t.Fatalf("got %d transcripts, want 2: %+v", len(transcripts), transcripts)
	}
	for _, tr := range transcripts {
		if tr.SessionID != "sess-a" && tr.SessionID != "sess-b" {
			t.Errorf("unexpected session id %q", tr.SessionID)
		}
	}
}

func TestFindTranscripts_NewestFirst(t *testing.T) {
	projectsDir := writeProjectDir(t, "/work/project", "old.jsonl", "new.jsonl")
	dir := filepath.Join(projectsDir, EncodeProjectPath("/work/project"))

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old.jsonl"), past, past); err != nil {
		t.Fatal(err)
	}

	transcripts, err := FindTranscripts(projectsDir, "/work/project")
	if err != nil {
		t.Fatalf("FindTranscripts() error: %v", err)
	}
	if len(transcripts) != 2 || transcripts[0].SessionID != "new" {
		t.Errorf("order = %+v, want new first", transcripts)
	}
}

func TestFindTranscripts_MissingDir(t *testing.T) {
	transcripts, err := FindTranscripts(t.TempDir(), "/no/such/project")
	if err != nil {
		t.Fatalf("FindTranscripts() error: %v", err)
	}
	if transcripts != nil {
		t.Errorf("got %+v, want nil", transcripts)
	}
}

func TestLatestTranscript_NoCandidates(t *testing.T) {
	_, ok, err := LatestTranscript(t.TempDir(), "/no/such/project")
	if err != nil {
		t.Fatalf("LatestTranscript() error: %v", err)
	}
	if ok {
		t.Error("ok = true, want false")
	}
}

func TestLoadProjectSession(t *testing.T) {
	base := t.TempDir()
	paths := StoragePaths{
		BasePath:       base,
		ProjectsDir:    filepath.Join(base, "projects"),
		FileHistoryDir: filepath.Join(base, "file-history"),
	}

	dir := filepath.Join(paths.ProjectsDir, EncodeProjectPath("/work/project"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	lines := []string{
		`{"type":"user","uuid":"u1","timestamp":"2026-05-01T10:00:00Z","sessionId":"sess-1","cwd":"/work/project","message":{"role":"user","content":"add a feature"}}`,
		`{"type":"assistant","uuid":"a1","parentUuid":"u1","timestamp":"2026-05-01T10:00:05Z","message":{"role":"assistant","content":[{"type":"tool_use","name":"Edit"}]}}`,
	}
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "sess-1.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	session, err := LoadProjectSession(paths, "/work/project")
	if err != nil {
		t.Fatalf("LoadProjectSession() error: %v", err)
	}
	if session == nil {
		t.Fatal("session = nil, want loaded session")
	}
	if session.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", session.SessionID)
	}
	if session.ProjectPath != "/work/project" {
		t.Errorf("ProjectPath = %q, want /work/project", session.ProjectPath)
	}
	if len(session.Prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(session.Prompts))
	}
	if session.Prompts[0].Text != "add a feature" {
		t.Errorf("prompt text = %q", session.Prompts[0].Text)
	}
}

func TestLoadProjectSession_NoSession(t *testing.T) {
	base := t.TempDir()
	paths := StoragePaths{
		ProjectsDir:    filepath.Join(base, "projects"),
		FileHistoryDir: filepath.Join(base, "file-history"),
	}

	session, err := LoadProjectSession(paths, "/work/project")
	if err != nil {
		t.Fatalf("LoadProjectSession() error: %v", err)
	}
	if session != nil {
		t.Errorf("session = %+v, want nil", session)
	}
}

func TestLoadSessionFromTranscript_FallbackSessionID(t *testing.T) {
	base := t.TempDir()
	paths := StoragePaths{
		ProjectsDir:    filepath.Join(base, "projects"),
		FileHistoryDir: filepath.Join(base, "file-history"),
	}

	// No sessionId on any event; the filename supplies the id.
	path := filepath.Join(base, "from-name.jsonl")
	line := `{"type":"user","uuid":"u1","timestamp":"2026-05-01T10:00:00Z","cwd":"/work/project","message":{"role":"user","content":"hello"}}` + "\n"
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	session, err := LoadSessionFromTranscript(paths, TranscriptInfo{Path: path, SessionID: "from-name"})
	if err != nil {
		t.Fatalf("LoadSessionFromTranscript() error: %v", err)
	}
	if session.SessionID != "from-name" {
		t.Errorf("SessionID = %q, want from-name", session.SessionID)
	}
}

func TestDetectStoragePaths_Override(t *testing.T) {
	paths, err := DetectStoragePaths("/custom/claude")
	if err != nil {
		t.Fatalf("DetectStoragePaths() error: %v", err)
	}
	if paths.BasePath != "/custom/claude" {
		t.Errorf("BasePath = %q", paths.BasePath)
	}
	if paths.ProjectsDir != "/custom/claude/projects" {
		t.Errorf("ProjectsDir = %q", paths.ProjectsDir)
	}
	if paths.SessionBackupDir("s1") != "/custom/claude/file-history/s1" {
		t.Errorf("SessionBackupDir = %q", paths.SessionBackupDir("s1"))
	}
}
