package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/promptdiff/internal"
)

func TestShowCommand(t *testing.T) {
	f := fixtureWithSession(t)
	if err := runCommand(t, f, "show", "--prompt", "1", "main.go"); err != nil {
		t.Errorf("show failed: %v", err)
	}
}

func TestShowCommand_After(t *testing.T) {
	f := fixtureWithSession(t)
	if err := runCommand(t, f, "show", "--prompt", "1", "--after", "/work/project/main.go"); err != nil {
		t.Errorf("show --after failed: %v", err)
	}
}

func TestShowCommand_UntrackedFile(t *testing.T) {
	f := fixtureWithSession(t)
	err := runCommand(t, f, "show", "--prompt", "1", "nope.go")
	if err == nil {
		t.Fatal("expected error for untracked file")
	}
	if !strings.Contains(err.Error(), "no tracked backup") {
		t.Errorf("error = %v, want no-tracked-backup", err)
	}
}

func TestLookupBackup(t *testing.T) {
	snapshot := map[string]internal.FileBackup{
		"/work/project/src/f.go": {BackupFileName: "h@v1", Version: 1},
	}

	tests := []struct {
		name   string
		target string
		wantOK bool
	}{
		{"absolute path", "/work/project/src/f.go", true},
		{"relative path", "src/f.go", true},
		{"bare basename", "f.go", true},
		{"unrelated path", "/other/g.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backup, ok := lookupBackup(snapshot, tt.target, "/work/project")
			if ok != tt.wantOK {
				t.Fatalf("lookupBackup(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if ok && backup.Version != 1 {
				t.Errorf("backup = %+v, want v1", backup)
			}
		})
	}
}
