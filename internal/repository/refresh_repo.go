package repository

import (
	"context"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

type RefreshRepo struct {
	db DBTX
}

func NewRefreshRepo(db DBTX) *RefreshRepo {
	return &RefreshRepo{db: db}
}

// Record inserts one refresh attempt.
func (r *RefreshRepo) Record(ctx context.Context, run *model.RefreshRun) error {
	query := `
		INSERT INTO refresh_runs (id, source, generation, status, row_count, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		run.ID, run.Source, int64(run.Generation), run.Status, run.RowCount,
		run.Error, run.StartedAt, run.FinishedAt,
	)
	return err
}

// Recent returns the latest refresh attempts, newest first.
func (r *RefreshRepo) Recent(ctx context.Context, limit int) ([]model.RefreshRun, error) {
	query := `
		SELECT id, source, generation, status, row_count, error, started_at, finished_at
		FROM refresh_runs
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []model.RefreshRun{}
	for rows.Next() {
		var run model.RefreshRun
		var gen int64
		if err := rows.Scan(
			&run.ID, &run.Source, &gen, &run.Status, &run.RowCount,
			&run.Error, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, err
		}
		run.Generation = uint64(gen)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
