package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Backup filenames are content-addressed: <contentHash>@v<version>.
var backupNameRe = regexp.MustCompile(`^(.+)@v(\d+)$`)

// parseBackupName splits a backup filename into its hash and version.
func parseBackupName(name string) (hash string, version int, ok bool) {
	m := backupNameRe.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	version, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], version, true
}

// ReconcileSnapshot corrects a snapshot against the on-disk backup store.
// The transcript may not yet contain a closing snapshot for the most recent
// prompt, so for each tracked path the store is consulted for a newer
// version sharing the recorded content hash. A missing or unreadable store
// degrades to returning the snapshot unchanged, never an error. The input
// map is never mutated.
func ReconcileSnapshot(base map[string]FileBackup, backupDir string) map[string]FileBackup {
	reconciled := copySnapshot(base)
	if backupDir == "" {
		return reconciled
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		LogDebug("Backup store not readable at %s: %v", backupDir, err)
		return reconciled
	}

	// Highest version on disk per content hash.
	maxVersions := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		hash, version, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		if version > maxVersions[hash] {
			maxVersions[hash] = version
		}
	}

	for path, backup := range reconciled {
		hash, _, ok := parseBackupName(backup.BackupFileName)
		if !ok {
			continue
		}
		if newest, found := maxVersions[hash]; found && newest > backup.Version {
			reconciled[path] = FileBackup{
				BackupFileName: fmt.Sprintf("%s@v%d", hash, newest),
				Version:        newest,
				BackupTime:     backup.BackupTime,
			}
		}
	}
	return reconciled
}

// BackupFilePath resolves (sessionID, backupFileName) to a path inside the
// backup store rooted at fileHistoryDir.
func BackupFilePath(fileHistoryDir, sessionID, backupFileName string) string {
	return filepath.Join(fileHistoryDir, sessionID, backupFileName)
}

// ReadBackup reads a backup file's bytes. A file reported as missing is
// treated as absent: the caller receives ok=false, not an error, because
// the store tolerates concurrent writers.
func ReadBackup(fileHistoryDir, sessionID, backupFileName string) ([]byte, bool, error) {
	data, err := os.ReadFile(BackupFilePath(fileHistoryDir, sessionID, backupFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}
