package internal

import "fmt"

// TranscriptError represents a genuine I/O failure reading a transcript the
// caller expected to exist. Absence is never reported this way; missing
// files surface as empty results.
type TranscriptError struct {
	Path string
	Op   string // "open", "read"
	Err  error
}

func (e *TranscriptError) Error() string {
	return fmt.Sprintf("transcript error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TranscriptError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IndexError represents errors accessing the prompt index database
type IndexError struct {
	Path string
	Op   string // "open", "write", "query"
	Err  error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
