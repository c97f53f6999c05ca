package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoragePaths holds the detected locations of Claude Code's on-disk state.
type StoragePaths struct {
	BasePath       string // Claude home directory (~/.claude)
	ProjectsDir    string // per-project transcript directories
	FileHistoryDir string // per-session backup stores
}

// DetectStoragePaths locates the Claude home directory. An explicit
// override takes precedence; otherwise ~/.claude is assumed.
func DetectStoragePaths(override string) (StoragePaths, error) {
	base := override
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return StoragePaths{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".claude")
	}

	return StoragePaths{
		BasePath:       base,
		ProjectsDir:    filepath.Join(base, "projects"),
		FileHistoryDir: filepath.Join(base, "file-history"),
	}, nil
}

// ProjectsDirExists reports whether any transcripts can exist at all.
func (sp StoragePaths) ProjectsDirExists() bool {
	info, err := os.Stat(sp.ProjectsDir)
	return err == nil && info.IsDir()
}

// SessionBackupDir returns the backup store directory for one session.
func (sp StoragePaths) SessionBackupDir(sessionID string) string {
	return filepath.Join(sp.FileHistoryDir, sessionID)
}
