package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	claudeDir   string
	projectPath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptdiff",
	Short: "Reconstruct per-prompt file changes from Claude Code sessions",
	Long: `A read-only CLI that reconstructs, from a Claude Code session transcript
and its on-disk backup store, the sequence of user prompts and the file
changes attributable to each prompt.

Features:
  • List prompts of the current session with tools used and files touched
  • Show a commit-style grouped list of file changes per prompt
  • Handle rewound (branching) transcripts correctly
  • Reconcile the final prompt's state against the backup store
  • Export sessions in multiple formats (JSON, JSONL, YAML, Markdown)
  • Watch mode that re-runs on transcript or backup changes
  • Searchable cross-session prompt index

Quick Start:
  promptdiff list                  # Prompts of the current project's session
  promptdiff changes --prompt 2    # File changes for prompt 2
  promptdiff export --format md    # Export the session as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&claudeDir, "claude-dir", "", "Custom Claude home directory (default ~/.claude)")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "Project path (default: current directory)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveProject returns the project path to operate on.
func resolveProject() (string, error) {
	if projectPath != "" {
		return projectPath, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return cwd, nil
}

// loadCurrentSession runs discovery and reconstruction for the selected
// project. A nil session with nil error means no session exists yet.
func loadCurrentSession() (*internal.Session, internal.StoragePaths, error) {
	paths, err := internal.DetectStoragePaths(claudeDir)
	if err != nil {
		return nil, internal.StoragePaths{}, err
	}
	project, err := resolveProject()
	if err != nil {
		return nil, paths, err
	}
	session, err := internal.LoadProjectSession(paths, project)
	if err != nil {
		return nil, paths, fmt.Errorf("failed to load session: %w", err)
	}
	return session, paths, nil
}
