package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List candidate transcripts for the project",
	Long: `List every transcript recorded for the project, newest first. The first
entry is the one the other commands operate on.`,
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

		fmt.Println(headerStyle.Render(fmt.Sprintf("Sessions for %s", project)))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tMODIFIED")
		for _, transcript := range transcripts {
			fmt.Fprintf(w, "%s\t%s\n",
				idStyle.Render(transcript.SessionID),
				dateStyle.Render(transcript.ModTime.Format(time.RFC3339)),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
