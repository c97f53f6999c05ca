package internal

import "time"

// Prompt is one user instruction plus everything attributable to it: the
// tools invoked while processing it, the files it touched, and the tracked
// backup state when it was submitted (before) and when the next instruction
// was submitted (after).
type Prompt struct {
	PromptNumber    int    `json:"promptNumber"`
	MessageID       string `json:"messageId"`
	ParentMessageID string `json:"parentMessageId,omitempty"`
	Text            string `json:"text"`
	Timestamp       string `json:"timestamp,omitempty"`

	BeforeSnapshot map[string]FileBackup `json:"beforeSnapshot"`
	AfterSnapshot  map[string]FileBackup `json:"afterSnapshot"`

	ToolsUsed            []string          `json:"toolsUsed,omitempty"`
	EditedFiles          []string          `json:"editedFiles,omitempty"`
	OriginalFileContents map[string]string `json:"originalFileContents,omitempty"`
}

// Session is the reconstructed view of one transcript file. It is immutable
// once assembled; a fresh parse produces a new Session.
type Session struct {
	SessionID      string    `json:"sessionId"`
	ProjectPath    string    `json:"projectPath,omitempty"`
	TranscriptPath string    `json:"transcriptPath"`
	Prompts        []Prompt  `json:"prompts"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// PromptByNumber returns the prompt with the given 1-based number.
func (s *Session) PromptByNumber(n int) (*Prompt, bool) {
	for i := range s.Prompts {
		if s.Prompts[i].PromptNumber == n {
			return &s.Prompts[i], true
		}
	}
	return nil, false
}
