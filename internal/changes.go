package internal

import (
	"path/filepath"
	"sort"
)

// ChangeType classifies how a file's state differs between the start and
// end of one prompt's execution.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// FileChange is a derived, ephemeral record of one file's change within one
// prompt. It is recomputed on each request and never stored.
//
// A nil AfterBackup on a modified change means the diff target is the live
// file on disk: either the store has not rotated between before and after,
// or the edit is too recent to be reflected in any snapshot.
type FileChange struct {
	FilePath        string      `json:"filePath"`
	ChangeType      ChangeType  `json:"changeType"`
	BeforeBackup    *FileBackup `json:"beforeBackup,omitempty"`
	AfterBackup     *FileBackup `json:"afterBackup,omitempty"`
	PromptNumber    int         `json:"promptNumber"`
	PromptText      string      `json:"promptText"`
	OriginalContent string      `json:"originalContent,omitempty"`
}

// NormalizePath resolves a tool-recorded path (relative or absolute) to a
// cleaned, absolute-where-possible form against the project root.
func NormalizePath(path, projectRoot string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if projectRoot != "" {
		return filepath.Join(projectRoot, path)
	}
	return filepath.Clean(path)
}

// pathMatcher reports the first key in keys that corresponds to target under
// one matching strategy. Matchers are pure and tried in a fixed order; the
// precedence exact > normalized > basename resolves ambiguous matches
// deterministically, at the known cost of occasionally picking the wrong
// file when distinct directories share a basename.
type pathMatcher func(target, projectRoot string, keys []string) (string, bool)

var pathMatchers = []pathMatcher{matchExact, matchNormalized, matchBasename}

func matchExact(target, _ string, keys []string) (string, bool) {
	for _, key := range keys {
		if key == target {
			return key, true
		}
	}
	return "", false
}

func matchNormalized(target, projectRoot string, keys []string) (string, bool) {
	normTarget := NormalizePath(target, projectRoot)
	for _, key := range keys {
		if NormalizePath(key, projectRoot) == normTarget {
			return key, true
		}
	}
	return "", false
}

func matchBasename(target, _ string, keys []string) (string, bool) {
	base := filepath.Base(target)
	for _, key := range keys {
		if filepath.Base(key) == base {
			return key, true
		}
	}
	return "", false
}

// matchPath runs the matcher chain and returns the winning key.
func matchPath(target, projectRoot string, keys []string) (string, bool) {
	for _, matcher := range pathMatchers {
		if key, ok := matcher(target, projectRoot, keys); ok {
			return key, true
		}
	}
	return "", false
}

// resolveOriginalContent looks up captured pre-session content for a path.
// An empty captured string is treated as absent.
func resolveOriginalContent(originals map[string]string, target, projectRoot string) (string, bool) {
	if len(originals) == 0 {
		return "", false
	}
	keys := sortedKeys(originals)
	key, ok := matchPath(target, projectRoot, keys)
	if !ok || originals[key] == "" {
		return "", false
	}
	return originals[key], true
}

// DeriveChanges diffs a prompt's before and after snapshots, plus its
// edited-file and original-content evidence, into typed file changes.
// Output order is deterministic for a given input; callers attach no
// meaning to it.
func DeriveChanges(prompt *Prompt, projectRoot string) []FileChange {
	before := normalizeSnapshot(prompt.BeforeSnapshot, projectRoot)
	after := normalizeSnapshot(prompt.AfterSnapshot, projectRoot)

	candidates := make(map[string]bool, len(before)+len(after))
	for path := range before {
		candidates[path] = true
	}
	for path := range after {
		candidates[path] = true
	}

	var changes []FileChange
	classified := make(map[string]bool)

	for _, path := range sortedKeys(candidates) {
		beforeBackup, inBefore := before[path]
		afterBackup, inAfter := after[path]

		switch {
		case !inBefore && inAfter:
			// First touch this session. Content captured before the first
			// edit proves the file predates the session.
			if content, ok := resolveOriginalContent(prompt.OriginalFileContents, path, projectRoot); ok {
				changes = append(changes, FileChange{
					FilePath:        path,
					ChangeType:      ChangeModified,
					PromptNumber:    prompt.PromptNumber,
					PromptText:      prompt.Text,
					OriginalContent: content,
				})
			} else {
				a := afterBackup
				changes = append(changes, FileChange{
					FilePath:     path,
					ChangeType:   ChangeAdded,
					AfterBackup:  &a,
					PromptNumber: prompt.PromptNumber,
					PromptText:   prompt.Text,
				})
			}
			classified[path] = true

		case inBefore && !inAfter:
			b := beforeBackup
			changes = append(changes, FileChange{
				FilePath:     path,
				ChangeType:   ChangeDeleted,
				BeforeBackup: &b,
				PromptNumber: prompt.PromptNumber,
				PromptText:   prompt.Text,
			})
			classified[path] = true

		case beforeBackup.Version != afterBackup.Version:
			b := beforeBackup
			change := FileChange{
				FilePath:     path,
				ChangeType:   ChangeModified,
				BeforeBackup: &b,
				PromptNumber: prompt.PromptNumber,
				PromptText:   prompt.Text,
			}
			// Same backup file on both sides means the store has not
			// rotated; diff against the live file instead.
			if beforeBackup.BackupFileName != afterBackup.BackupFileName {
				a := afterBackup
				change.AfterBackup = &a
			}
			changes = append(changes, change)
			classified[path] = true
		}
		// Equal versions: no change from the snapshot evidence. The path
		// may still surface below via edited-file evidence.
	}

	// A just-made edit may not be reflected in any snapshot yet; reported
	// edits win over unchanged snapshot versions as a safety net.
	beforeKeys := sortedKeys(before)
	for _, edited := range prompt.EditedFiles {
		normEdited := NormalizePath(edited, projectRoot)
		if classified[normEdited] || basenameClassified(classified, normEdited) {
			continue
		}
		classified[normEdited] = true

		change := FileChange{
			FilePath:     normEdited,
			ChangeType:   ChangeModified,
			PromptNumber: prompt.PromptNumber,
			PromptText:   prompt.Text,
		}
		if key, ok := matchPath(edited, projectRoot, beforeKeys); ok {
			b := before[key]
			change.BeforeBackup = &b
		} else if content, ok := resolveOriginalContent(prompt.OriginalFileContents, edited, projectRoot); ok {
			change.OriginalContent = content
		} else {
			change.ChangeType = ChangeAdded
		}
		changes = append(changes, change)
	}

	return changes
}

// normalizeSnapshot rekeys a backup table by normalized path. When two raw
// keys normalize to the same path the later-sorted one wins; this mirrors
// the deterministic-but-lossy handling of ambiguous paths.
func normalizeSnapshot(snapshot map[string]FileBackup, projectRoot string) map[string]FileBackup {
	normalized := make(map[string]FileBackup, len(snapshot))
	for _, key := range sortedKeys(snapshot) {
		normalized[NormalizePath(key, projectRoot)] = snapshot[key]
	}
	return normalized
}

func basenameClassified(classified map[string]bool, path string) bool {
	base := filepath.Base(path)
	for done := range classified {
		if filepath.Base(done) == base {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
