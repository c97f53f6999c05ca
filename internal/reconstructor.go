package internal

import (
	"path/filepath"
	"time"
)

// unlinkedPrompt is the first-phase form of a prompt: everything except the
// after-state, which is only knowable once the following prompt (or the
// backup store) has been consulted.
type unlinkedPrompt struct {
	promptNumber    int
	messageID       string
	parentMessageID string
	text            string
	timestamp       string
	beforeSnapshot  map[string]FileBackup
	toolsUsed       []string
	editedFiles     []string
	originals       map[string]string
}

// Reconstructor assembles Sessions from decoded transcript events. It is
// stateless between calls; fileHistoryDir points at the root of the on-disk
// backup store (one subdirectory per session).
type Reconstructor struct {
	fileHistoryDir string
}

// NewReconstructor creates a new Reconstructor. fileHistoryDir may be empty,
// in which case no backup-store reconciliation is attempted.
func NewReconstructor(fileHistoryDir string) *Reconstructor {
	return &Reconstructor{fileHistoryDir: fileHistoryDir}
}

// ReconstructSession builds the ordered prompt sequence for one transcript.
// Prompts are numbered along the active conversation path only; rewound
// branches contribute no prompts. Construction is two-phase: unlinked
// prompts first, then a second immutable sequence carrying both snapshots.
func (r *Reconstructor) ReconstructSession(events []Event, transcriptPath string, lastUpdated time.Time) *Session {
	session := &Session{
		TranscriptPath: transcriptPath,
		LastUpdated:    lastUpdated,
	}
	for i := range events {
		if events[i].SessionID != "" {
			session.SessionID = events[i].SessionID
			break
		}
	}
	for i := range events {
		if events[i].Type == EventTypeUser && events[i].CWD != "" {
			session.ProjectPath = events[i].CWD
			break
		}
	}

	active := ActiveEventIDs(events)
	evidence := correlateEvents(events)

	var unlinked []unlinkedPrompt
	for i := range events {
		ev := &events[i]
		if !ev.IsPlainTextPrompt() || !onActivePath(active, ev.UUID) {
			continue
		}

		before := map[string]FileBackup{}
		if snapshot, ok := evidence.snapshots[ev.UUID]; ok {
			before = copySnapshot(snapshot)
		}

		unlinked = append(unlinked, unlinkedPrompt{
			promptNumber:    len(unlinked) + 1,
			messageID:       ev.UUID,
			parentMessageID: ev.ParentUUID,
			text:            ev.User.Text,
			timestamp:       ev.Timestamp,
			beforeSnapshot:  before,
			toolsUsed:       evidence.tools[ev.UUID],
			editedFiles:     evidence.edited[ev.UUID],
			originals:       evidence.originals[ev.UUID],
		})
	}

	session.Prompts = r.linkPrompts(unlinked, evidence.latest, session.SessionID)
	return session
}

// linkPrompts produces the final prompt sequence. Each prompt's after-state
// is the next prompt's before-state; the last prompt's after-state comes
// from the latest snapshot in the log, reconciled against the backup store
// because the log may lag the store for the most recent instruction.
func (r *Reconstructor) linkPrompts(unlinked []unlinkedPrompt, latest map[string]FileBackup, sessionID string) []Prompt {
	prompts := make([]Prompt, 0, len(unlinked))
	for i, u := range unlinked {
		var after map[string]FileBackup
		if i < len(unlinked)-1 {
			after = copySnapshot(unlinked[i+1].beforeSnapshot)
		} else {
			after = ReconcileSnapshot(latest, r.sessionBackupDir(sessionID))
		}

		prompts = append(prompts, Prompt{
			PromptNumber:         u.promptNumber,
			MessageID:            u.messageID,
			ParentMessageID:      u.parentMessageID,
			Text:                 u.text,
			Timestamp:            u.timestamp,
			BeforeSnapshot:       u.beforeSnapshot,
			AfterSnapshot:        after,
			ToolsUsed:            u.toolsUsed,
			EditedFiles:          u.editedFiles,
			OriginalFileContents: u.originals,
		})
	}
	return prompts
}

func (r *Reconstructor) sessionBackupDir(sessionID string) string {
	if r.fileHistoryDir == "" || sessionID == "" {
		return ""
	}
	return filepath.Join(r.fileHistoryDir, sessionID)
}
