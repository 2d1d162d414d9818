package store

import (
	"context"
	"errors"
	"time"
)

// Submission is one successful check as kept in the journal.
type Submission struct {
	ID             string
	CreatedAt      time.Time
	Source         string
	Engine         string
	Model          string
	Lang           string
	TextHash       string
	Text           string
	CorrectedText  string
	ExplanationsMD string
	LatencyMS      int64
}

type SubmissionRepo struct{ DB *DB }

func NewSubmissionRepo(db *DB) *SubmissionRepo { return &SubmissionRepo{DB: db} }

func (r *SubmissionRepo) Record(ctx context.Context, s Submission) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	q := r.DB.Rebind(`
insert into submissions (
  id, created_at, source, engine, model, lang,
  text_hash, text, corrected_text, explanations_md, latency_ms
) values (?,?,?,?,?,?,?,?,?,?,?)`)
	_, err := r.DB.ExecContext(ctx, q,
		s.ID, s.CreatedAt, s.Source, s.Engine, s.Model, s.Lang,
		s.TextHash, s.Text, s.CorrectedText, s.ExplanationsMD, s.LatencyMS,
	)
	return err
}

// Recent returns the newest submissions first.
func (r *SubmissionRepo) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.DB.Rebind(`
select id, created_at, source, engine, model, lang,
       text_hash, text, corrected_text, explanations_md, latency_ms
from submissions
order by created_at desc
limit ?`)
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Source, &s.Engine, &s.Model, &s.Lang,
			&s.TextHash, &s.Text, &s.CorrectedText, &s.ExplanationsMD, &s.LatencyMS); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PurgeOlderThan removes journal rows older than the given age.
func (r *SubmissionRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`delete from submissions where created_at < ?`), cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
