package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/logging"
)

// Session is the single active dataset for one user, plus the last analysis
// run against it so results can be exported later.
type Session struct {
	UserID       string          `json:"user_id"`
	DatasetID    string          `json:"dataset_id"`
	Schema       dataset.Schema  `json:"schema"`
	FilePath     string          `json:"file_path"`
	Origin       string          `json:"origin"`
	LastAnalysis string          `json:"last_analysis,omitempty"`
	LastResult   json.RawMessage `json:"last_result,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Mirror persists sessions in the shared store. One row per user; a new
// upload replaces the previous session wholesale (last writer wins).
type Mirror struct {
	db *sql.DB
}

func NewMirror(db *sql.DB) *Mirror {
	return &Mirror{db: db}
}

// Publish upserts the user's session row atomically. Concurrent publishes
// for the same user never interleave fields from different sessions.
func (m *Mirror) Publish(ctx context.Context, s *Session) error {
	if s == nil || s.UserID == "" {
		return errors.New("session requires a user id")
	}
	schemaJSON, err := json.Marshal(s.Schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, dataset_id, file_path, origin, schema_json, last_analysis, last_result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			dataset_id = excluded.dataset_id,
			file_path = excluded.file_path,
			origin = excluded.origin,
			schema_json = excluded.schema_json,
			last_analysis = excluded.last_analysis,
			last_result = excluded.last_result,
			created_at = excluded.created_at`,
		s.UserID, s.DatasetID, s.FilePath, s.Origin, string(schemaJSON),
		s.LastAnalysis, string(s.LastResult), createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("publish session: %w", err)
	}
	logging.Debugf("published session for %s (dataset %s)", s.UserID, s.DatasetID)
	return nil
}

// Fetch returns the user's active session, or nil when none exists. Having
// no session is an ordinary state, not an error.
func (m *Mirror) Fetch(ctx context.Context, userID string) (*Session, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT dataset_id, file_path, origin, schema_json, last_analysis, last_result, created_at
		FROM sessions WHERE user_id = ?`, userID)

	var s Session
	var schemaJSON, lastResult, createdAt string
	err := row.Scan(&s.DatasetID, &s.FilePath, &s.Origin, &schemaJSON, &s.LastAnalysis, &lastResult, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	s.UserID = userID
	if err := json.Unmarshal([]byte(schemaJSON), &s.Schema); err != nil {
		return nil, fmt.Errorf("decode session schema: %w", err)
	}
	if lastResult != "" {
		s.LastResult = json.RawMessage(lastResult)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = t
	}
	return &s, nil
}

// RecordResult stores the latest analysis outcome on the active session so
// a later invocation can export it.
func (m *Mirror) RecordResult(ctx context.Context, userID, analysisType string, result json.RawMessage) error {
	res, err := m.db.ExecContext(ctx, `
		UPDATE sessions SET last_analysis = ?, last_result = ? WHERE user_id = ?`,
		analysisType, string(result), userID)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("no active session to record result on")
	}
	return nil
}

// Reset removes the user's session. Resetting a user without one is a no-op.
func (m *Mirror) Reset(ctx context.Context, userID string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
