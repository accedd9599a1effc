package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

type TranscriptRepo struct {
	db DBTX
}

func NewTranscriptRepo(db DBTX) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

// Save stores a chat exchange. The chart is kept as JSONB.
func (r *TranscriptRepo) Save(ctx context.Context, t *model.Transcript) error {
	var chart []byte
	if t.Chart != nil {
		b, err := json.Marshal(t.Chart)
		if err != nil {
			return fmt.Errorf("encode chart: %w", err)
		}
		chart = b
	}

	query := `
		INSERT INTO chat_transcripts (id, question, answer, chart, follow_ups, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, t.ID, t.Question, t.Answer, chart, t.FollowUps, t.CreatedAt)
	return err
}

// Recent returns the latest transcripts, newest first.
func (r *TranscriptRepo) Recent(ctx context.Context, limit int) ([]model.Transcript, error) {
	query := `
		SELECT id, question, answer, chart, follow_ups, created_at
		FROM chat_transcripts
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Transcript{}
	for rows.Next() {
		var t model.Transcript
		var chart []byte
		if err := rows.Scan(&t.ID, &t.Question, &t.Answer, &chart, &t.FollowUps, &t.CreatedAt); err != nil {
			return nil, err
		}
		if len(chart) > 0 {
			var spec model.ChartSpec
			if err := json.Unmarshal(chart, &spec); err != nil {
				return nil, fmt.Errorf("decode chart of %s: %w", t.ID, err)
			}
			t.Chart = &spec
		}
		if t.FollowUps == nil {
			t.FollowUps = []string{}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
