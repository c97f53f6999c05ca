package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [transcript.jsonl]",
	Short: "Show raw event statistics for a transcript",
	Long: `Decode a transcript and report what it contains: event counts by type,
malformed lines, active-path length, and snapshot coverage. Defaults to the
project's current transcript when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var transcriptPath string
		if len(args) == 1 {
			transcriptPath = args[0]
		} else {
			paths, err := internal.DetectStoragePaths(claudeDir)
			if err != nil {
				return err
			}
			project, err := resolveProject()
			if err != nil {
				return err
			}
			transcript, ok, err := internal.LatestTranscript(paths.ProjectsDir, project)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("No session found for this project.")
				return nil
			}
			transcriptPath = transcript.Path
		}

		result, err := internal.ReadTranscript(transcriptPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("Transcript does not exist.")
				return nil
			}
			return &internal.TranscriptError{Path: transcriptPath, Op: "read", Err: err}
		}

		byType := map[string]int{}
		snapshots := 0
		prompts := 0
		active := internal.ActiveEventIDs(result.Events)
		for i := range result.Events {
			ev := &result.Events[i]
			byType[ev.Type]++
			if ev.Snapshot != nil {
				snapshots++
			}
			if ev.IsPlainTextPrompt() {
				prompts++
			}
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Transcript %s", transcriptPath)))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "events\t%d\n", len(result.Events))
		fmt.Fprintf(w, "malformed lines\t%d\n", result.Skipped)
		for _, eventType := range sortedTypeKeys(byType) {
			fmt.Fprintf(w, "  type %s\t%d\n", eventType, byType[eventType])
		}
		fmt.Fprintf(w, "plain-text prompts\t%d\n", prompts)
		fmt.Fprintf(w, "active path length\t%d\n", len(active))
		fmt.Fprintf(w, "snapshot events\t%d\n", snapshots)
		return w.Flush()
	},
}

func sortedTypeKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
