package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchLimit int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search indexed prompts across sessions",
	Long: `Search the local prompt index for instructions containing the given term.
Run 'promptdiff index' first to populate the index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openIndex()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		hits, err := db.Search(args[0], searchLimit)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No matching prompts.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\t#\tPROMPT")
		for _, hit := range hits {
			fmt.Fprintf(w, "%s\t%d\t%s\n",
				idStyle.Render(shortID(hit.SessionID)),
				hit.PromptNumber,
				truncate(hit.Text, 70),
			)
		}
		return w.Flush()
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
