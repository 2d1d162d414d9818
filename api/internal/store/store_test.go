package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_SQLite(t *testing.T) {
	db := openTestDB(t)
	assert.Equal(t, SQLite, db.Dialect)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(context.Background(), "/nonexistent/path/journal.db")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &DB{Dialect: Postgres}
	assert.Equal(t, "select * from t where a=$1 and b=$2", pg.Rebind("select * from t where a=? and b=?"))

	lite := &DB{Dialect: SQLite}
	assert.Equal(t, "select ?", lite.Rebind("select ?"))
}

func TestSubmissionRepo_RecordAndRecent(t *testing.T) {
	repo := NewSubmissionRepo(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, Submission{
		ID: "a", CreatedAt: base, Source: "web", Engine: "gpt", Model: "gpt-4o-mini",
		Lang: "es", TextHash: "h1", Text: "Yo va.", CorrectedText: "Yo fui.", ExplanationsMD: "- fui", LatencyMS: 120,
	}))
	require.NoError(t, repo.Record(ctx, Submission{
		ID: "b", CreatedAt: base.Add(time.Minute), Source: "telegram", Engine: "gpt", Model: "gpt-4o-mini",
		TextHash: "h2", Text: "Comí.",
	}))

	got, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "Yo fui.", got[1].CorrectedText)
	assert.Equal(t, int64(120), got[1].LatencyMS)
	assert.True(t, base.Equal(got[1].CreatedAt.UTC()))

	got, err = repo.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSubmissionRepo_DuplicateID(t *testing.T) {
	repo := NewSubmissionRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, Submission{ID: "x", Source: "cli", Engine: "gpt", Model: "m", TextHash: "h", Text: "t"}))
	assert.Error(t, repo.Record(ctx, Submission{ID: "x", Source: "cli", Engine: "gpt", Model: "m", TextHash: "h", Text: "t"}))
}

func TestSubmissionRepo_PurgeOlderThan(t *testing.T) {
	repo := NewSubmissionRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, Submission{ID: "old", CreatedAt: time.Now().UTC().Add(-48 * time.Hour), Source: "web", Engine: "gpt", Model: "m", TextHash: "h", Text: "t"}))
	require.NoError(t, repo.Record(ctx, Submission{ID: "new", Source: "web", Engine: "gpt", Model: "m", TextHash: "h", Text: "t"}))

	n, err := repo.PurgeOlderThan(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)

	_, err = repo.PurgeOlderThan(ctx, 0)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "host=db port=5432 db=span user=app",
		Summary("postgres://app:secret@db:5432/span?sslmode=disable"))
	assert.Equal(t, "host=db db=span user=app", Summary("postgresql://app:secret@db/span"))
	assert.NotContains(t, Summary("postgres://app:secret@db:5432/span"), "secret")
	assert.Equal(t, "sqlite file=journal.db", Summary(" journal.db "))
}
