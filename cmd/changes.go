package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

var (
	changesPrompt int
)

var (
	addedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	modifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	deletedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// changesCmd represents the changes command
var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show file changes grouped by prompt",
	Long: `Show a commit-style grouped list of file changes per prompt: which files
were added, modified, or deleted while processing each user instruction.

Use --prompt to restrict output to a single prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadCurrentSession()
		if err != nil {
			return err
		}
		if session == nil {
			fmt.Println("No session found for this project.")
			return nil
		}

		prompts := session.Prompts
		if changesPrompt > 0 {
			prompt, ok := session.PromptByNumber(changesPrompt)
			if !ok {
				return fmt.Errorf("prompt %d not found (session has %d prompts)", changesPrompt, len(session.Prompts))
			}
			prompts = []internal.Prompt{*prompt}
		}

		if len(prompts) == 0 {
			fmt.Println("No prompts in this session.")
			return nil
		}

		for i := range prompts {
			prompt := &prompts[i]
			fmt.Println(promptStyle.Render(fmt.Sprintf("Prompt %d: %s", prompt.PromptNumber, truncate(prompt.Text, 70))))
			if prompt.Timestamp != "" {
				fmt.Println(pathStyle.Render("  " + prompt.Timestamp))
			}

			changes := internal.DeriveChanges(prompt, session.ProjectPath)
			if len(changes) == 0 {
				fmt.Println(pathStyle.Render("  no file changes"))
				fmt.Println()
				continue
			}

			for _, change := range changes {
				fmt.Printf("  %s %s%s\n", changeBadge(change.ChangeType), change.FilePath, changeDetail(change))
			}
			fmt.Println()
		}
		return nil
	},
}

func changeBadge(ct internal.ChangeType) string {
	switch ct {
	case internal.ChangeAdded:
		return addedStyle.Render("A")
	case internal.ChangeDeleted:
		return deletedStyle.Render("D")
	default:
		return modifiedStyle.Render("M")
	}
}

func changeDetail(change internal.FileChange) string {
	switch {
	case change.BeforeBackup != nil && change.AfterBackup != nil:
		return pathStyle.Render(fmt.Sprintf("  (v%d..v%d)", change.BeforeBackup.Version, change.AfterBackup.Version))
	case change.BeforeBackup != nil:
		return pathStyle.Render(fmt.Sprintf("  (v%d..live)", change.BeforeBackup.Version))
	case change.OriginalContent != "":
		return pathStyle.Render("  (vs captured original)")
	default:
		return ""
	}
}

func init() {
	changesCmd.Flags().IntVar(&changesPrompt, "prompt", 0, "Show changes for a single prompt number")
	rootCmd.AddCommand(changesCmd)
}
