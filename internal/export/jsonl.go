package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/promptdiff/internal"
)

// JSONLExporter exports sessions in JSONL format (one prompt per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format. Each line carries one prompt
// and the file changes derived for it.
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for i := range session.Prompts {
		prompt := &session.Prompts[i]
		obj := map[string]interface{}{
			"promptNumber": prompt.PromptNumber,
			"text":         prompt.Text,
			"changes":      internal.DeriveChanges(prompt, session.ProjectPath),
		}
		if prompt.Timestamp != "" {
			obj["timestamp"] = prompt.Timestamp
		}
		if len(prompt.ToolsUsed) > 0 {
			obj["toolsUsed"] = prompt.ToolsUsed
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode prompt %d: %w", prompt.PromptNumber, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
