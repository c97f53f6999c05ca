package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/promptdiff/internal"
	"github.com/iksnae/promptdiff/internal/index"
	"github.com/spf13/cobra"
)

var indexForce bool

// defaultIndexPath returns the index database location under the user's
// home directory.
func defaultIndexPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".promptdiff", "index.db"), nil
}

func openIndex() (*index.DB, error) {
	path, err := defaultIndexPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	return index.Open(path)
}

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the project's prompts for cross-session search",
	Long: `Parse every transcript of the project and store its prompts in a local
sqlite index. Unchanged transcripts (by modification time) are skipped
unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := internal.DetectStoragePaths(claudeDir)
		if err != nil {
			return err
		}
		project, err := resolveProject()
		if err != nil {
			return err
		}

		transcripts, err := internal.FindTranscripts(paths.ProjectsDir, project)
		if err != nil {
			return fmt.Errorf("failed to list transcripts: %w", err)
		}
		if len(transcripts) == 0 {
			fmt.Println("No sessions found for this project.")
			return nil
		}

		db, err := openIndex()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		indexed, skipped := 0, 0
		for _, transcript := range transcripts {
			if !indexForce {
				current, err := db.IsCurrent(transcript.SessionID, transcript.ModTime)
				if err != nil {
					return err
				}
				if current {
					skipped++
					continue
				}
			}

			session, err := internal.LoadSessionFromTranscript(paths, transcript)
			if err != nil {
				internal.LogWarn("Skipping %s: %v", transcript.Path, err)
				continue
			}
			if session == nil {
				continue
			}
			if err := db.IndexSession(session); err != nil {
				return err
			}
			indexed++
		}

		fmt.Printf("Indexed %d session(s), %d already current.\n", indexed, skipped)
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "Reindex even if the transcript is unchanged")
	rootCmd.AddCommand(indexCmd)
}
