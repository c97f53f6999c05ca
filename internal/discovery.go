package internal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TranscriptInfo describes one candidate transcript file for a project.
type TranscriptInfo struct {
	Path      string
	SessionID string
	ModTime   time.Time
}

// EncodeProjectPath converts a project's filesystem path into the directory
// name Claude Code uses under its projects dir: every path separator is
// replaced with a dash.
func EncodeProjectPath(projectPath string) string {
	return strings.ReplaceAll(filepath.ToSlash(filepath.Clean(projectPath)), "/", "-")
}

// DecodeProjectDir is the best-effort inverse of EncodeProjectPath. Dashes
// that were part of the original path are indistinguishable from encoded
// separators, so the result is only a display hint.
func DecodeProjectDir(dirName string) string {
	if !strings.HasPrefix(dirName, "-") {
		return dirName
	}
	return filepath.Clean(strings.ReplaceAll(dirName, "-", "/"))
}

// FindTranscripts lists candidate transcripts for a project, newest first.
// Candidates are *.jsonl files in the project's encoded directory, excluding
// agent (subagent) logs. A missing directory yields no candidates, not an
// error.
func FindTranscripts(projectsDir, projectPath string) ([]TranscriptInfo, error) {
	dir := filepath.Join(projectsDir, EncodeProjectPath(projectPath))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var transcripts []TranscriptInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".jsonl") || strings.HasPrefix(name, "agent-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		transcripts = append(transcripts, TranscriptInfo{
			Path:      filepath.Join(dir, name),
			SessionID: strings.TrimSuffix(name, ".jsonl"),
			ModTime:   info.ModTime(),
		})
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].ModTime.After(transcripts[j].ModTime)
	})
	return transcripts, nil
}

// LatestTranscript picks the most recently modified candidate, or ok=false
// when the project has no transcripts.
func LatestTranscript(projectsDir, projectPath string) (TranscriptInfo, bool, error) {
	transcripts, err := FindTranscripts(projectsDir, projectPath)
	if err != nil {
		return TranscriptInfo{}, false, err
	}
	if len(transcripts) == 0 {
		return TranscriptInfo{}, false, nil
	}
	return transcripts[0], true, nil
}

// LoadProjectSession runs the full pipeline for a project path: discover the
// current transcript, decode it, and reconstruct the session. Returns nil
// with no error when the project has no session yet.
func LoadProjectSession(paths StoragePaths, projectPath string) (*Session, error) {
	transcript, ok, err := LatestTranscript(paths.ProjectsDir, projectPath)
	if err != nil || !ok {
		return nil, err
	}
	return LoadSessionFromTranscript(paths, transcript)
}

// LoadSessionFromTranscript decodes one transcript file and reconstructs
// its session. A transcript that vanished between discovery and read is
// treated as no session.
func LoadSessionFromTranscript(paths StoragePaths, transcript TranscriptInfo) (*Session, error) {
	result, err := ReadTranscript(transcript.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if result.Skipped > 0 {
		LogWarn("Skipped %d malformed line(s) in %s", result.Skipped, transcript.Path)
	}

	r := NewReconstructor(paths.FileHistoryDir)
	session := r.ReconstructSession(result.Events, transcript.Path, transcript.ModTime)
	if session.SessionID == "" {
		session.SessionID = transcript.SessionID
	}
	return session, nil
}
