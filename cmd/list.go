package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts of the current session",
	Long: `List the user prompts of the project's current session, with the tools
invoked and files edited while processing each one. Prompts on rewound
branches are excluded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadCurrentSession()
		if err != nil {
			return err
		}
		if session == nil {
			fmt.Println("No session found for this project.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Session %s", session.SessionID)))
		fmt.Println(dateStyle.Render(fmt.Sprintf("Transcript: %s", session.TranscriptPath)))
		fmt.Println()

		if len(session.Prompts) == 0 {
			fmt.Println("No prompts in this session.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tPROMPT\tTOOLS\tFILES")
		for i := range session.Prompts {
			prompt := &session.Prompts[i]
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
				countStyle.Render(fmt.Sprintf("%d", prompt.PromptNumber)),
				titleStyle.Render(truncate(prompt.Text, 60)),
				len(prompt.ToolsUsed),
				len(prompt.EditedFiles),
			)
		}
		return w.Flush()
	},
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
}
