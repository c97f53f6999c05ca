package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/promptdiff/internal"
	"github.com/iksnae/promptdiff/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current session with its file changes",
	Long: `Export the project's current session in one of several formats.

Formats:
  json     Pretty-printed session (prompts and snapshots)
  jsonl    One prompt per line with its derived file changes
  yaml     YAML rendering of the session
  md       Commit-style Markdown report of changes per prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		session, _, err := loadCurrentSession()
		if err != nil {
			return err
		}
		if session == nil {
			fmt.Println("No session found for this project.")
			return nil
		}

		out := os.Stdout
		if exportOutput != "" {
			file, err := os.Create(exportOutput)
			if err != nil {
				return &internal.ExportError{Format: exportFormat, Path: exportOutput, Err: err}
			}
			defer func() { _ = file.Close() }()
			out = file
		}

		if err := exporter.Export(session, out); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: exportOutput, Err: err}
		}
		if exportOutput != "" {
			internal.LogInfo("Exported session %s to %s", session.SessionID, exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, jsonl, yaml, md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
