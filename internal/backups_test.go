package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHash    string
		wantVersion int
		wantOK      bool
	}{
		{"simple", "abc123@v1", "abc123", 1, true},
		{"multi digit version", "ffee00@v12", "ffee00", 12, true},
		{"hash containing at sign", "we@ird@v2", "we@ird", 2, true},
		{"no version suffix", "abc123", "", 0, false},
		{"empty hash", "@v1", "", 0, false},
		{"non-numeric version", "abc@vx", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, version, ok := parseBackupName(tt.input)
			if hash != tt.wantHash || version != tt.wantVersion || ok != tt.wantOK {
				t.Errorf("parseBackupName(%q) = %q, %d, %v, want %q, %d, %v",
					tt.input, hash, version, ok, tt.wantHash, tt.wantVersion, tt.wantOK)
			}
		})
	}
}

func writeBackups(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestReconcileSnapshot_UpgradesToNewestVersion(t *testing.T) {
	dir := t.TempDir()
	writeBackups(t, dir, "h@v1", "h@v2")

	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "h@v1", Version: 1},
	}
	got := ReconcileSnapshot(base, dir)

	backup := got["/work/f.go"]
	if backup.Version != 2 || backup.BackupFileName != "h@v2" {
		t.Errorf("reconciled = %+v, want h@v2/2", backup)
	}
}

func TestReconcileSnapshot_NoNewerVersion(t *testing.T) {
	dir := t.TempDir()
	writeBackups(t, dir, "h@v1")

	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "h@v1", Version: 1},
	}
	got := ReconcileSnapshot(base, dir)

	if backup := got["/work/f.go"]; backup.Version != 1 || backup.BackupFileName != "h@v1" {
		t.Errorf("reconciled = %+v, want unchanged h@v1/1", backup)
	}
}

func TestReconcileSnapshot_OtherHashIgnored(t *testing.T) {
	dir := t.TempDir()
	writeBackups(t, dir, "other@v9")

	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "h@v1", Version: 1},
	}
	got := ReconcileSnapshot(base, dir)

	if backup := got["/work/f.go"]; backup.Version != 1 {
		t.Errorf("reconciled = %+v, want unchanged", backup)
	}
}

func TestReconcileSnapshot_MissingDirectory(t *testing.T) {
	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "h@v1", Version: 1},
	}
	got := ReconcileSnapshot(base, filepath.Join(t.TempDir(), "absent"))

	if backup := got["/work/f.go"]; backup.Version != 1 {
		t.Errorf("reconciled = %+v, want unchanged on missing dir", backup)
	}
}

func TestReconcileSnapshot_EmptyDirHandle(t *testing.T) {
	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "h@v1", Version: 1},
	}
	if got := ReconcileSnapshot(base, ""); got["/work/f.go"].Version != 1 {
		t.Error("empty dir handle should return snapshot unchanged")
	}
}

func TestReconcileSnapshot_DoesNotMutateInput(t *testing.T) {
	dir := t.TempDir()
	writeBackups(t, dir, "h@v1", "h@v5")

	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "h@v1", Version: 1},
	}
	_ = ReconcileSnapshot(base, dir)

	if base["/work/f.go"].Version != 1 {
		t.Errorf("input snapshot mutated: %+v", base["/work/f.go"])
	}
}

func TestReconcileSnapshot_UnparsableRecordedName(t *testing.T) {
	dir := t.TempDir()
	writeBackups(t, dir, "h@v2")

	base := map[string]FileBackup{
		"/work/f.go": {BackupFileName: "not-a-backup-name", Version: 1},
	}
	got := ReconcileSnapshot(base, dir)

	if backup := got["/work/f.go"]; backup.BackupFileName != "not-a-backup-name" {
		t.Errorf("reconciled = %+v, want untouched", backup)
	}
}

func TestReadBackup(t *testing.T) {
	fileHistory := t.TempDir()
	sessionDir := filepath.Join(fileHistory, "sess-1")
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sessionDir, "h@v1"), []byte("content"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, ok, err := ReadBackup(fileHistory, "sess-1", "h@v1")
	if err != nil || !ok {
		t.Fatalf("ReadBackup() = %v, %v, want ok", ok, err)
	}
	if string(data) != "content" {
		t.Errorf("data = %q, want content", data)
	}

	// A file appearing missing mid-read is absence, not failure.
	if _, ok, err := ReadBackup(fileHistory, "sess-1", "h@v2"); ok || err != nil {
		t.Errorf("ReadBackup(missing) = %v, %v, want false, nil", ok, err)
	}
}
