package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check if promptdiff can locate session data",
	Long: `Check the health of promptdiff by verifying:
  • Claude home directory detection
  • Transcript availability for the selected project
  • Backup store availability for the current session

This command is useful for debugging storage issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("Promptdiff Health Check"))
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 1: Detecting Claude home..."))
		paths, err := internal.DetectStoragePaths(claudeDir)
		if err != nil {
			fmt.Println(errStyle.Render("✗ Failed to detect storage paths:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Storage paths detected"))
		if healthcheckVerbose {
			fmt.Printf("   Base path: %s\n", paths.BasePath)
			fmt.Printf("   Projects: %s\n", paths.ProjectsDir)
			fmt.Printf("   File history: %s\n", paths.FileHistoryDir)
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 2: Checking transcripts..."))
		if !paths.ProjectsDirExists() {
			fmt.Println(warningStyle.Render("⚠ Projects directory not found"))
			fmt.Println("   Nothing to reconstruct; has Claude Code run on this machine?")
			return nil
		}
		project, err := resolveProject()
		if err != nil {
			return err
		}
		transcripts, err := internal.FindTranscripts(paths.ProjectsDir, project)
		if err != nil {
			fmt.Println(errStyle.Render("✗ Failed to list transcripts:"), err)
			os.Exit(1)
		}
		if len(transcripts) == 0 {
			fmt.Println(warningStyle.Render("⚠ No transcripts for this project"))
			return nil
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %d transcript(s) found", len(transcripts))))
		if healthcheckVerbose {
			for _, transcript := range transcripts {
				fmt.Printf("   %s (%s)\n", transcript.SessionID, transcript.ModTime.Format("2006-01-02 15:04"))
			}
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 3: Checking backup store..."))
		current := transcripts[0]
		backupDir := paths.SessionBackupDir(current.SessionID)
		if info, err := os.Stat(backupDir); err == nil && info.IsDir() {
			fmt.Println(successStyle.Render("✓ Backup store present"))
			if healthcheckVerbose {
				fmt.Printf("   %s\n", backupDir)
			}
		} else {
			fmt.Println(warningStyle.Render("⚠ No backup store for the current session"))
			fmt.Println("   Reconciliation will fall back to transcript snapshots only.")
		}

		return nil
	},
}

func init() {
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "detail", false, "Show detailed path information")
	rootCmd.AddCommand(healthcheckCmd)
}
