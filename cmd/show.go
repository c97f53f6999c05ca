package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

var (
	showPrompt int
	showAfter  bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a file's backed-up content at a prompt boundary",
	Long: `Print the content a file had when a prompt was submitted, read from the
session's backup store. By default the state before the prompt is shown;
--after shows the state when the next prompt was submitted instead.

The file may be given as an absolute path, a project-relative path, or a
bare basename.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, paths, err := loadCurrentSession()
		if err != nil {
			return err
		}
		if session == nil {
			fmt.Println("No session found for this project.")
			return nil
		}

		prompt, ok := session.PromptByNumber(showPrompt)
		if !ok {
			return fmt.Errorf("prompt %d not found (session has %d prompts)", showPrompt, len(session.Prompts))
		}

		snapshot := prompt.BeforeSnapshot
		if showAfter {
			snapshot = prompt.AfterSnapshot
		}

		backup, ok := lookupBackup(snapshot, args[0], session.ProjectPath)
		if !ok {
			return fmt.Errorf("no tracked backup of %s at prompt %d", args[0], showPrompt)
		}

		data, found, err := internal.ReadBackup(paths.FileHistoryDir, session.SessionID, backup.BackupFileName)
		if err != nil {
			return fmt.Errorf("failed to read backup %s: %w", backup.BackupFileName, err)
		}
		if !found {
			return fmt.Errorf("backup %s is tracked but missing from %s",
				backup.BackupFileName, paths.SessionBackupDir(session.SessionID))
		}

		_, err = os.Stdout.Write(data)
		return err
	},
}

// lookupBackup finds the snapshot entry for a user-supplied path: normalized
// match first, then bare basename as a convenience fallback.
func lookupBackup(snapshot map[string]internal.FileBackup, target, projectRoot string) (internal.FileBackup, bool) {
	normTarget := internal.NormalizePath(target, projectRoot)
	for path, backup := range snapshot {
		if internal.NormalizePath(path, projectRoot) == normTarget {
			return backup, true
		}
	}
	for path, backup := range snapshot {
		if filepath.Base(path) == filepath.Base(target) {
			return backup, true
		}
	}
	return internal.FileBackup{}, false
}

func init() {
	showCmd.Flags().IntVar(&showPrompt, "prompt", 1, "Prompt number to show the file at")
	showCmd.Flags().BoolVar(&showAfter, "after", false, "Show the state when the next prompt was submitted")
	rootCmd.AddCommand(showCmd)
}
