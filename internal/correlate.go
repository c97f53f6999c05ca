package internal

// correlation is the evidence extracted from the full event list that ties
// snapshots, tool invocations, and file edits back to the user prompt that
// caused them. Extraction runs over every event, not only the active path:
// tool activity parented under a rewound branch can still matter for
// attribution when the branch point is revisited.
type correlation struct {
	// snapshots maps a snapshot event's declared message id to its backup
	// table. latest is the last snapshot event seen anywhere in the log.
	snapshots map[string]map[string]FileBackup
	latest    map[string]FileBackup

	// tools, edited, and originals are keyed by the uuid of the owning
	// plain-text user event.
	tools     map[string][]string
	edited    map[string][]string
	originals map[string]map[string]string
}

// correlateEvents runs the three extraction passes described above.
func correlateEvents(events []Event) *correlation {
	byID := eventsByID(events)

	c := &correlation{
		snapshots: make(map[string]map[string]FileBackup),
		tools:     make(map[string][]string),
		edited:    make(map[string][]string),
		originals: make(map[string]map[string]string),
	}

	for i := range events {
		ev := &events[i]
		switch {
		case ev.Snapshot != nil:
			c.snapshots[ev.Snapshot.MessageID] = ev.Snapshot.TrackedFileBackups
			c.latest = ev.Snapshot.TrackedFileBackups

		case ev.Assistant != nil:
			names := ev.ToolUses()
			if len(names) == 0 {
				continue
			}
			owner := owningPromptID(byID, ev)
			if owner == "" {
				continue
			}
			for _, name := range names {
				c.tools[owner] = appendUnique(c.tools[owner], name)
			}

		case ev.Type == EventTypeUser && ev.User != nil && ev.User.ToolUseResult != nil:
			result := ev.User.ToolUseResult
			owner := owningPromptID(byID, ev)
			if owner == "" {
				continue
			}
			c.edited[owner] = appendUnique(c.edited[owner], result.FilePath)

			// Only the first captured content per path reflects the
			// pre-prompt baseline; later edits within the same prompt
			// already include earlier changes.
			if content, ok := result.OriginalContent(); ok {
				if c.originals[owner] == nil {
					c.originals[owner] = make(map[string]string)
				}
				if _, exists := c.originals[owner][result.FilePath]; !exists {
					c.originals[owner][result.FilePath] = content
				}
			}
		}
	}

	return c
}

// owningPromptID walks parent links upward from ev until it reaches a
// plain-text user event, skipping tool-result user events and assistant
// nodes along the way. Returns the empty string when the chain dead-ends.
func owningPromptID(byID map[string]*Event, ev *Event) string {
	seen := make(map[string]bool)
	for cur := ev; cur != nil; {
		if cur.IsPlainTextPrompt() {
			return cur.UUID
		}
		if cur.ParentUUID == "" || seen[cur.UUID] {
			return ""
		}
		seen[cur.UUID] = true
		cur = byID[cur.ParentUUID]
	}
	return ""
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// copySnapshot returns an independent copy of a backup table so published
// prompts never alias correlation state.
func copySnapshot(snapshot map[string]FileBackup) map[string]FileBackup {
	copied := make(map[string]FileBackup, len(snapshot))
	for path, backup := range snapshot {
		copied[path] = backup
	}
	return copied
}
