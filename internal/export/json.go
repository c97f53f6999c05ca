package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/iksnae/promptdiff/internal"
)

// sessionDocument is the serialized shape shared by the JSON and YAML
// exporters: the session plus the file changes derived for each prompt, so
// consumers don't have to re-run the derivation themselves.
type sessionDocument struct {
	SessionID      string           `json:"sessionId"`
	ProjectPath    string           `json:"projectPath,omitempty"`
	TranscriptPath string           `json:"transcriptPath"`
	LastUpdated    time.Time        `json:"lastUpdated"`
	Prompts        []promptDocument `json:"prompts"`
}

type promptDocument struct {
	internal.Prompt
	Changes []internal.FileChange `json:"changes,omitempty"`
}

func buildDocument(session *internal.Session) sessionDocument {
	doc := sessionDocument{
		SessionID:      session.SessionID,
		ProjectPath:    session.ProjectPath,
		TranscriptPath: session.TranscriptPath,
		LastUpdated:    session.LastUpdated,
		Prompts:        make([]promptDocument, 0, len(session.Prompts)),
	}
	for i := range session.Prompts {
		doc.Prompts = append(doc.Prompts, promptDocument{
			Prompt:  session.Prompts[i],
			Changes: internal.DeriveChanges(&session.Prompts[i], session.ProjectPath),
		})
	}
	return doc
}

// JSONExporter exports sessions in JSON format (pretty-printed)
type JSONExporter struct{}

// Export writes the session and its derived per-prompt changes as indented
// JSON.
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(buildDocument(session))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
