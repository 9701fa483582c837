package session_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/session"
	"github.com/statloom/statloom-cli/internal/store"
)

func openTestStore(t *testing.T) *session.Mirror {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "statloom.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return session.NewMirror(db)
}

func testSession(t *testing.T, userID, datasetID string) *session.Session {
	t.Helper()
	sch, err := dataset.NewSchema(datasetID, 100,
		[]string{"age", "gender"}, []string{"age"}, []string{"gender"}, nil)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return &session.Session{
		UserID:    userID,
		DatasetID: datasetID,
		Schema:    *sch,
		FilePath:  "/tmp/survey.csv",
		Origin:    "upload",
	}
}

func TestPublishFetchRoundTrip(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()

	if err := m.Publish(ctx, testSession(t, "u1", "ds-1")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	got, err := m.Fetch(ctx, "u1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got == nil || got.DatasetID != "ds-1" {
		t.Fatalf("fetched = %#v", got)
	}
	if got.Schema.RowCount != 100 || !got.Schema.IsNumeric("age") {
		t.Fatalf("schema not round-tripped: %#v", got.Schema)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestPublishLastWriterWins(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()

	if err := m.Publish(ctx, testSession(t, "u1", "ds-1")); err != nil {
		t.Fatalf("Publish s1: %v", err)
	}
	if err := m.Publish(ctx, testSession(t, "u1", "ds-2")); err != nil {
		t.Fatalf("Publish s2: %v", err)
	}
	got, err := m.Fetch(ctx, "u1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.DatasetID != "ds-2" {
		t.Fatalf("dataset = %s, want ds-2", got.DatasetID)
	}
}

func TestFetchMissingIsNotAnError(t *testing.T) {
	m := openTestStore(t)
	got, err := m.Fetch(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %#v", got)
	}
}

func TestRecordResultAndReset(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()

	if err := m.RecordResult(ctx, "u1", "crosstab", json.RawMessage(`{"kind":"text","text":"x"}`)); err == nil {
		t.Fatal("expected error recording on a missing session")
	}

	if err := m.Publish(ctx, testSession(t, "u1", "ds-1")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	res := json.RawMessage(`{"kind":"text","text":"Mean: 31.4"}`)
	if err := m.RecordResult(ctx, "u1", "descriptive", res); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	got, err := m.Fetch(ctx, "u1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.LastAnalysis != "descriptive" || string(got.LastResult) != string(res) {
		t.Fatalf("last result = %s %s", got.LastAnalysis, got.LastResult)
	}

	if err := m.Reset(ctx, "u1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got, err = m.Fetch(ctx, "u1")
	if err != nil || got != nil {
		t.Fatalf("after reset: %#v, %v", got, err)
	}
	// resetting again is a no-op
	if err := m.Reset(ctx, "u1"); err != nil {
		t.Fatalf("second Reset: %v", err)
	}
}

func TestSessionsAreScopedPerUser(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()

	if err := m.Publish(ctx, testSession(t, "u1", "ds-1")); err != nil {
		t.Fatalf("Publish u1: %v", err)
	}
	if err := m.Publish(ctx, testSession(t, "u2", "ds-2")); err != nil {
		t.Fatalf("Publish u2: %v", err)
	}
	got, err := m.Fetch(ctx, "u2")
	if err != nil || got == nil || got.DatasetID != "ds-2" {
		t.Fatalf("u2 session = %#v, %v", got, err)
	}
	if err := m.Reset(ctx, "u2"); err != nil {
		t.Fatalf("Reset u2: %v", err)
	}
	got, err = m.Fetch(ctx, "u1")
	if err != nil || got == nil || got.DatasetID != "ds-1" {
		t.Fatalf("u1 session lost: %#v, %v", got, err)
	}
}
