package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/logging"
)

var (
	// ErrNotFound is returned when a project id does not exist.
	ErrNotFound = errors.New("project not found")
	// ErrConflict is returned when a save precondition is not met.
	ErrConflict = errors.New("project conflict")
)

// Snapshot is the session state frozen into a saved project. It records
// enough of the dataset shape to rebuild a working session later and to
// detect when the underlying file has changed shape since the save.
type Snapshot struct {
	DatasetID    string   `json:"dataset_id"`
	RowCount     int      `json:"row_count"`
	Columns      []string `json:"columns"`
	Numeric      []string `json:"numeric_columns"`
	Categorical  []string `json:"categorical_columns"`
	LastAnalysis string   `json:"last_analysis,omitempty"`
}

// Matches reports whether a freshly profiled schema still has the column
// layout recorded at save time. A mismatch means the source file changed
// shape since the project was saved.
func (s Snapshot) Matches(sch *dataset.Schema) bool {
	return equalStrings(s.Columns, sch.Columns) &&
		equalStrings(s.Numeric, sch.Numeric) &&
		equalStrings(s.Categorical, sch.Categorical)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Project is a named, immutable snapshot of an analysis session.
type Project struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	FileReference string    `json:"file_reference"`
	Snapshot      Snapshot  `json:"context"`
	CreatedAt     time.Time `json:"created_at"`
}

// Archive persists project snapshots in the shared store.
type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// Save freezes a snapshot under a fresh id. The title must be non-empty;
// saving never mutates or closes the live session it snapshots.
func (a *Archive) Save(ctx context.Context, userID, title, fileReference string, snap Snapshot) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: project title is required", ErrConflict)
	}
	if snap.DatasetID == "" {
		return nil, fmt.Errorf("%w: no active session to save", ErrConflict)
	}
	p := &Project{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		FileReference: fileReference,
		Snapshot:      snap,
		CreatedAt:     time.Now().UTC(),
	}
	ctxJSON, err := json.Marshal(p.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal project context: %w", err)
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, title, file_reference, context_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, p.FileReference, string(ctxJSON), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	logging.Infof("saved project %q (%s)", p.Title, p.ID)
	return p, nil
}

// Load returns one project by id, scoped to the user.
func (a *Archive) Load(ctx context.Context, userID, id string) (*Project, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, file_reference, context_json, created_at
		FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return p, nil
}

// List returns the user's projects, newest first.
func (a *Archive) List(ctx context.Context, userID string) ([]*Project, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, user_id, title, file_reference, context_json, created_at
		FROM projects WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Delete removes a project. Deleting an id that does not exist is a no-op.
func (a *Archive) Delete(ctx context.Context, userID, id string) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(r rowScanner) (*Project, error) {
	var p Project
	var ctxJSON, createdAt string
	if err := r.Scan(&p.ID, &p.UserID, &p.Title, &p.FileReference, &ctxJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ctxJSON), &p.Snapshot); err != nil {
		return nil, fmt.Errorf("decode project context: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}
	return &p, nil
}
