// Package index maintains an optional sqlite index of prompts across
// sessions, so past instructions can be searched without re-parsing every
// transcript. The reconstruction core stays stateless; the index is an
// explicit cache owned by the CLI layer and keyed by transcript mtime.
package index

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iksnae/promptdiff/internal"
)

// DB wraps the prompt index database.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &internal.IndexError{Path: path, Op: "open", Err: err}
	}

	d := &DB{db: db}
	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, &internal.IndexError{Path: path, Op: "open", Err: err}
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			project_path TEXT,
			transcript_path TEXT,
			last_updated INTEGER,
			prompt_count INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS prompts (
			session_id TEXT,
			prompt_number INTEGER,
			message_id TEXT,
			text TEXT,
			timestamp TEXT,
			tools TEXT,
			edited_files TEXT,
			PRIMARY KEY (session_id, prompt_number)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_prompts_session ON prompts(session_id);`,
	}

	for _, stmt := range stmts {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// IsCurrent reports whether the index already covers the session at the
// given modification time. Callers use this to skip re-parsing unchanged
// transcripts.
func (d *DB) IsCurrent(sessionID string, lastUpdated time.Time) (bool, error) {
	var stored int64
	err := d.db.QueryRow(`SELECT last_updated FROM sessions WHERE session_id = ?`, sessionID).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &internal.IndexError{Op: "query", Err: err}
	}
	return stored >= lastUpdated.Unix(), nil
}

// IndexSession replaces the stored prompts for a session with the given
// reconstruction. Indexing is last-writer-wins per session.
func (d *DB) IndexSession(session *internal.Session) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &internal.IndexError{Op: "write", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM prompts WHERE session_id = ?`, session.SessionID); err != nil {
		return &internal.IndexError{Op: "write", Err: err}
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO sessions (session_id, project_path, transcript_path, last_updated, prompt_count)
		 VALUES (?, ?, ?, ?, ?)`,
		session.SessionID, session.ProjectPath, session.TranscriptPath,
		session.LastUpdated.Unix(), len(session.Prompts),
	); err != nil {
		return &internal.IndexError{Op: "write", Err: err}
	}

	for i := range session.Prompts {
		prompt := &session.Prompts[i]
		if _, err := tx.Exec(
			`INSERT INTO prompts (session_id, prompt_number, message_id, text, timestamp, tools, edited_files)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			session.SessionID, prompt.PromptNumber, prompt.MessageID, prompt.Text,
			prompt.Timestamp, strings.Join(prompt.ToolsUsed, ","), strings.Join(prompt.EditedFiles, ","),
		); err != nil {
			return &internal.IndexError{Op: "write", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &internal.IndexError{Op: "write", Err: err}
	}
	return nil
}

// Hit is one search result.
type Hit struct {
	SessionID    string
	ProjectPath  string
	PromptNumber int
	Text         string
	Timestamp    string
}

// Search returns prompts whose text contains the term, newest session
// first. limit <= 0 means no limit.
func (d *DB) Search(term string, limit int) ([]Hit, error) {
	query := `SELECT p.session_id, s.project_path, p.prompt_number, p.text, p.timestamp
		FROM prompts p
		LEFT JOIN sessions s ON s.session_id = p.session_id
		WHERE p.text LIKE ?
		ORDER BY s.last_updated DESC, p.prompt_number ASC`
	args := []interface{}{"%" + term + "%"}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, &internal.IndexError{Op: "query", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var hits []Hit
	for rows.Next() {
		var hit Hit
		var projectPath sql.NullString
		if err := rows.Scan(&hit.SessionID, &projectPath, &hit.PromptNumber, &hit.Text, &hit.Timestamp); err != nil {
			return nil, &internal.IndexError{Op: "query", Err: err}
		}
		hit.ProjectPath = projectPath.String
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}
