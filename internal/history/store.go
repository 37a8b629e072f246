package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
	"github.com/msto63/mlogo/foundation/turtle/language"
)

// Outcome classifies the result of a submission
type Outcome string

const (
	OutcomeOK         Outcome = "OK"
	OutcomeIncomplete Outcome = "INCOMPLETE"
	OutcomeError      Outcome = "ERROR"
)

// Session groups the submissions of one interpreter session
type Session struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Submissions int       `json:"submissions" yaml:"submissions"`
}

// Submission is one recorded script submission
type Submission struct {
	ID           int64                  `json:"id" yaml:"id"`
	SessionID    string                 `json:"session_id" yaml:"session_id"`
	Timestamp    time.Time              `json:"timestamp" yaml:"timestamp"`
	Script       string                 `json:"script" yaml:"script"`
	Outcome      Outcome                `json:"outcome" yaml:"outcome"`
	DrawCommands []language.DrawCommand `json:"draw_commands,omitempty" yaml:"draw_commands,omitempty"`
	Error        *language.ErrorInfo    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Store defines the interface for submission persistence
type Store interface {
	CreateSession(ctx context.Context, name string) (*Session, error)
	RecordSubmission(ctx context.Context, sub *Submission) error
	ListSessions(ctx context.Context, limit int) ([]*Session, error)
	Submissions(ctx context.Context, sessionID string) ([]*Submission, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore opens (and creates if needed) a history database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, mdwerror.Wrap(err, "failed to create directory").
			WithCode(mdwerror.CodeDatabaseError).
			WithDetail("path", dir)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open database").
			WithCode(mdwerror.CodeConnectionFailed)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, mdwerror.Wrap(err, "failed to initialize schema").
			WithCode(mdwerror.CodeDatabaseError)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		timestamp DATETIME NOT NULL,
		script TEXT NOT NULL,
		outcome TEXT NOT NULL,
		draw_commands TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_session ON submissions(session_id, id);
	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateSession starts a new session with a random id
func (s *SQLiteStore) CreateSession(ctx context.Context, name string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, created_at) VALUES (?, ?, ?)
	`, session.ID, session.Name, session.CreatedAt)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to insert session").
			WithCode(mdwerror.CodeDatabaseError)
	}

	return session, nil
}

// RecordSubmission appends a submission to its session
func (s *SQLiteStore) RecordSubmission(ctx context.Context, sub *Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.SessionID == "" {
		return mdwerror.New("submission needs a session id").
			WithCode(mdwerror.CodeInvalidInput)
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now().UTC()
	}

	var drawJSON, errorJSON []byte
	if len(sub.DrawCommands) > 0 {
		drawJSON, _ = json.Marshal(sub.DrawCommands)
	}
	if sub.Error != nil {
		errorJSON, _ = json.Marshal(sub.Error)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (session_id, timestamp, script, outcome, draw_commands, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sub.SessionID, sub.Timestamp, sub.Script, sub.Outcome, nullable(drawJSON), nullable(errorJSON))
	if err != nil {
		return mdwerror.Wrap(err, "failed to insert submission").
			WithCode(mdwerror.CodeDatabaseError).
			WithDetail("session_id", sub.SessionID)
	}

	sub.ID, _ = result.LastInsertId()
	return nil
}

// ListSessions returns the most recent sessions first
func (s *SQLiteStore) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT s.id, s.name, s.created_at, COUNT(sub.id)
		FROM sessions s
		LEFT JOIN submissions sub ON sub.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to query sessions").
			WithCode(mdwerror.CodeDatabaseError)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var session Session
		if err := rows.Scan(&session.ID, &session.Name, &session.CreatedAt, &session.Submissions); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

// Submissions returns a session's submissions in the order they were made
func (s *SQLiteStore) Submissions(ctx context.Context, sessionID string) ([]*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE id = ?`, sessionID).Scan(&exists)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to look up session").
			WithCode(mdwerror.CodeDatabaseError)
	}
	if exists == 0 {
		return nil, mdwerror.New(fmt.Sprintf("session %s not found", sessionID)).
			WithCode(mdwerror.CodeNotFound).
			WithDetail("session_id", sessionID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, timestamp, script, outcome, draw_commands, error
		FROM submissions WHERE session_id = ? ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to query submissions").
			WithCode(mdwerror.CodeDatabaseError)
	}
	defer rows.Close()

	var submissions []*Submission
	for rows.Next() {
		var sub Submission
		var drawJSON, errorJSON sql.NullString

		if err := rows.Scan(&sub.ID, &sub.SessionID, &sub.Timestamp, &sub.Script,
			&sub.Outcome, &drawJSON, &errorJSON); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		if drawJSON.Valid {
			sub.DrawCommands = decodeDrawCommands(drawJSON.String)
		}
		if errorJSON.Valid {
			var info language.ErrorInfo
			if json.Unmarshal([]byte(errorJSON.String), &info) == nil {
				sub.Error = &info
			}
		}

		submissions = append(submissions, &sub)
	}

	return submissions, rows.Err()
}

// Prune removes sessions created before now minus olderThan
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	// submissions first; the cascade needs foreign keys, which older
	// databases may have been opened without
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM submissions WHERE session_id IN (SELECT id FROM sessions WHERE created_at < ?)
	`, cutoff); err != nil {
		return 0, mdwerror.Wrap(err, "failed to prune submissions").
			WithCode(mdwerror.CodeDatabaseError)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, mdwerror.Wrap(err, "failed to prune sessions").
			WithCode(mdwerror.CodeDatabaseError)
	}

	return result.RowsAffected()
}

// Vacuum compacts the database file
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(data []byte) interface{} {
	if data == nil {
		return nil
	}
	return string(data)
}

// wireDrawCommand mirrors the self-describing JSON form of a draw command
type wireDrawCommand struct {
	Kind          language.DrawKind `json:"drawCommand"`
	ID            int               `json:"id"`
	X1            float64           `json:"x1"`
	Y1            float64           `json:"y1"`
	X2            float64           `json:"x2"`
	Y2            float64           `json:"y2"`
	PreviousAngle float64           `json:"previousAngle"`
	NewAngle      float64           `json:"newAngle"`
}

func decodeDrawCommands(data string) []language.DrawCommand {
	var wire []wireDrawCommand
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil
	}

	commands := make([]language.DrawCommand, len(wire))
	for i, w := range wire {
		commands[i] = language.DrawCommand(w)
	}
	return commands
}
