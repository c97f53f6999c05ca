package internal

import (
	"encoding/json"
	"strings"
)

// Event type discriminators used in Claude Code transcript files.
const (
	EventTypeUser                = "user"
	EventTypeAssistant           = "assistant"
	EventTypeFileHistorySnapshot = "file-history-snapshot"
)

// Event represents a single decoded transcript record. The Type field
// discriminates which payload pointer is populated; records with a type we
// don't recognize keep only the envelope fields and the raw line.
type Event struct {
	Type       string
	UUID       string
	ParentUUID string // empty when absent or null
	Timestamp  string
	SessionID  string
	CWD        string
	IsMeta     bool

	User      *UserPayload
	Assistant *AssistantPayload
	Snapshot  *SnapshotPayload

	Raw json.RawMessage
}

// UserPayload holds the message content of a user event.
type UserPayload struct {
	Text          string // set when message.content was a plain string
	IsPlainText   bool
	ToolUseResult *ToolUseResult
}

// AssistantPayload holds the content blocks of an assistant event.
type AssistantPayload struct {
	ContentBlocks []ContentBlock
}

// ContentBlock is one element of an assistant message's content array.
type ContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// ToolUseResult is the parsed toolUseResult payload attached to user events
// that carry the outcome of a file-editing tool.
type ToolUseResult struct {
	FilePath             string `json:"filePath"`
	OriginalFile         string `json:"originalFile"`
	OriginalFileContents string `json:"originalFileContents"`
}

// OriginalContent returns the pre-edit file content captured by the tool, if
// any. Different tools record it under different keys.
func (r *ToolUseResult) OriginalContent() (string, bool) {
	if r == nil {
		return "", false
	}
	if r.OriginalFile != "" {
		return r.OriginalFile, true
	}
	if r.OriginalFileContents != "" {
		return r.OriginalFileContents, true
	}
	return "", false
}

// SnapshotPayload holds a file-history-snapshot event's backup table.
type SnapshotPayload struct {
	MessageID          string
	TrackedFileBackups map[string]FileBackup
}

// FileBackup records one saved copy of a file's content within a session's
// backup store. Version is monotonically non-decreasing per path.
type FileBackup struct {
	BackupFileName string `json:"backupFileName"`
	Version        int    `json:"version"`
	BackupTime     string `json:"backupTime,omitempty"`
}

// eventEnvelope covers the fields shared across transcript record types.
// Payloads are kept raw and parsed per-type in ParseEvent.
type eventEnvelope struct {
	Type          string          `json:"type"`
	UUID          string          `json:"uuid"`
	ParentUUID    *string         `json:"parentUuid"`
	Timestamp     string          `json:"timestamp"`
	SessionID     string          `json:"sessionId"`
	CWD           string          `json:"cwd"`
	IsMeta        bool            `json:"isMeta"`
	Message       json.RawMessage `json:"message"`
	ToolUseResult json.RawMessage `json:"toolUseResult"`
	MessageID     string          `json:"messageId"`
	Snapshot      json.RawMessage `json:"snapshot"`
}

// ParseEvent decodes one transcript line into an Event. It uses two-pass
// parsing: the envelope first, then the role-specific payload.
func ParseEvent(line []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Event{}, err
	}

	ev := Event{
		Type:      env.Type,
		UUID:      env.UUID,
		Timestamp: env.Timestamp,
		SessionID: env.SessionID,
		CWD:       env.CWD,
		IsMeta:    env.IsMeta,
		Raw:       json.RawMessage(append([]byte(nil), line...)),
	}
	if env.ParentUUID != nil {
		ev.ParentUUID = *env.ParentUUID
	}

	switch env.Type {
	case EventTypeUser:
		ev.User = parseUserPayload(env)
	case EventTypeAssistant:
		ev.Assistant = parseAssistantPayload(env)
	case EventTypeFileHistorySnapshot:
		ev.Snapshot = parseSnapshotPayload(env)
	}

	return ev, nil
}

func parseUserPayload(env eventEnvelope) *UserPayload {
	payload := &UserPayload{}

	var msg struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(env.Message, &msg); err == nil && len(msg.Content) > 0 {
		var text string
		if err := json.Unmarshal(msg.Content, &text); err == nil {
			payload.Text = text
			payload.IsPlainText = true
		}
	}

	if len(env.ToolUseResult) > 0 {
		var result ToolUseResult
		if err := json.Unmarshal(env.ToolUseResult, &result); err == nil && result.FilePath != "" {
			payload.ToolUseResult = &result
		}
	}

	return payload
}

func parseAssistantPayload(env eventEnvelope) *AssistantPayload {
	var msg struct {
		Content []ContentBlock `json:"content"`
	}
	if err := json.Unmarshal(env.Message, &msg); err != nil {
		return &AssistantPayload{}
	}
	return &AssistantPayload{ContentBlocks: msg.Content}
}

func parseSnapshotPayload(env eventEnvelope) *SnapshotPayload {
	payload := &SnapshotPayload{MessageID: env.MessageID}

	var snap struct {
		MessageID          string                `json:"messageId"`
		TrackedFileBackups map[string]FileBackup `json:"trackedFileBackups"`
	}
	if err := json.Unmarshal(env.Snapshot, &snap); err == nil {
		payload.TrackedFileBackups = snap.TrackedFileBackups
		if payload.MessageID == "" {
			payload.MessageID = snap.MessageID
		}
	}
	if payload.TrackedFileBackups == nil {
		payload.TrackedFileBackups = map[string]FileBackup{}
	}

	return payload
}

// IsPlainTextPrompt reports whether the event is a user instruction typed by
// a person: a non-meta user event whose content is a plain string.
func (e *Event) IsPlainTextPrompt() bool {
	return e.Type == EventTypeUser && !e.IsMeta &&
		e.User != nil && e.User.IsPlainText &&
		strings.TrimSpace(e.User.Text) != ""
}

// ToolUses returns the names of tools invoked in an assistant event's
// content blocks, in order of appearance.
func (e *Event) ToolUses() []string {
	if e.Assistant == nil {
		return nil
	}
	var names []string
	for _, block := range e.Assistant.ContentBlocks {
		if block.Type == "tool_use" && block.Name != "" {
			names = append(names, block.Name)
		}
	}
	return names
}
