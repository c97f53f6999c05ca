package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/promptdiff/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export writes a commit-style report: one section per prompt with its
// grouped file changes.
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Session %s\n\n", session.SessionID)

	if session.ProjectPath != "" {
		_, _ = fmt.Fprintf(w, "**Project:** %s  \n", session.ProjectPath)
	}
	_, _ = fmt.Fprintf(w, "**Transcript:** %s  \n", session.TranscriptPath)
	_, _ = fmt.Fprintf(w, "**Prompts:** %d\n\n", len(session.Prompts))

	for i := range session.Prompts {
		prompt := &session.Prompts[i]

		_, _ = fmt.Fprintf(w, "---\n\n")
		_, _ = fmt.Fprintf(w, "## Prompt %d\n\n", prompt.PromptNumber)
		if prompt.Timestamp != "" {
			_, _ = fmt.Fprintf(w, "*%s*\n\n", prompt.Timestamp)
		}
		_, _ = fmt.Fprintf(w, "> %s\n\n", summarize(prompt.Text))

		if len(prompt.ToolsUsed) > 0 {
			_, _ = fmt.Fprintf(w, "**Tools:** %s\n\n", strings.Join(prompt.ToolsUsed, ", "))
		}

		changes := internal.DeriveChanges(prompt, session.ProjectPath)
		if len(changes) == 0 {
			_, _ = fmt.Fprintf(w, "No file changes.\n\n")
			continue
		}

		for _, change := range changes {
			_, _ = fmt.Fprintf(w, "- `%s` %s%s\n", change.FilePath, change.ChangeType, versionSpan(change))
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	return nil
}

// summarize flattens a prompt to a single quoted line.
func summarize(text string) string {
	line := strings.Join(strings.Fields(text), " ")
	if len(line) > 200 {
		line = line[:197] + "..."
	}
	return line
}

func versionSpan(change internal.FileChange) string {
	if change.BeforeBackup != nil && change.AfterBackup != nil {
		return fmt.Sprintf(" (v%d..v%d)", change.BeforeBackup.Version, change.AfterBackup.Version)
	}
	if change.BeforeBackup != nil {
		return fmt.Sprintf(" (from v%d)", change.BeforeBackup.Version)
	}
	return ""
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
