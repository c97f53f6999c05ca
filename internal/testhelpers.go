package internal

import (
	"encoding/json"
	"time"
)

// Test data builders shared across package tests and the exporters' tests.

// CreateUserEvent builds a plain-text user event.
func CreateUserEvent(uuid, parent, text string) Event {
	return Event{
		Type:       EventTypeUser,
		UUID:       uuid,
		ParentUUID: parent,
		SessionID:  "test-session",
		CWD:        "/work/project",
		User:       &UserPayload{Text: text, IsPlainText: true},
	}
}

// CreateMetaUserEvent builds a meta user event (excluded from prompts).
func CreateMetaUserEvent(uuid, parent, text string) Event {
	ev := CreateUserEvent(uuid, parent, text)
	ev.IsMeta = true
	return ev
}

// CreateToolResultEvent builds a user event carrying a file-edit tool result.
func CreateToolResultEvent(uuid, parent, filePath, originalFile string) Event {
	return Event{
		Type:       EventTypeUser,
		UUID:       uuid,
		ParentUUID: parent,
		SessionID:  "test-session",
		User: &UserPayload{
			ToolUseResult: &ToolUseResult{FilePath: filePath, OriginalFile: originalFile},
		},
	}
}

// CreateAssistantEvent builds an assistant event invoking the named tools.
func CreateAssistantEvent(uuid, parent string, tools ...string) Event {
	payload := &AssistantPayload{}
	for _, tool := range tools {
		payload.ContentBlocks = append(payload.ContentBlocks, ContentBlock{
			Type: "tool_use", Name: tool, Input: json.RawMessage(`{}`),
		})
	}
	return Event{
		Type:       EventTypeAssistant,
		UUID:       uuid,
		ParentUUID: parent,
		SessionID:  "test-session",
		Assistant:  payload,
	}
}

// CreateSnapshotEvent builds a file-history-snapshot event.
func CreateSnapshotEvent(messageID string, backups map[string]FileBackup) Event {
	if backups == nil {
		backups = map[string]FileBackup{}
	}
	return Event{
		Type:     EventTypeFileHistorySnapshot,
		Snapshot: &SnapshotPayload{MessageID: messageID, TrackedFileBackups: backups},
	}
}

// CreateTestSession builds a session with one prompt and a simple
// before/after snapshot pair.
func CreateTestSession(id string) *Session {
	return &Session{
		SessionID:      id,
		ProjectPath:    "/work/project",
		TranscriptPath: "/work/transcripts/" + id + ".jsonl",
		LastUpdated:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Prompts: []Prompt{
			{
				PromptNumber: 1,
				MessageID:    "msg-1",
				Text:         "add a greeting",
				Timestamp:    "2025-06-01T12:00:00Z",
				BeforeSnapshot: map[string]FileBackup{
					"/work/project/main.go": {BackupFileName: "abc@v1", Version: 1},
				},
				AfterSnapshot: map[string]FileBackup{
					"/work/project/main.go": {BackupFileName: "abc@v2", Version: 2},
				},
				ToolsUsed:   []string{"Edit"},
				EditedFiles: []string{"/work/project/main.go"},
			},
		},
	}
}
