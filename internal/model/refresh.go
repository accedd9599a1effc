package model

import (
	"time"

	"github.com/google/uuid"
)

// Refresh outcomes.
const (
	RefreshOK    = "ok"
	RefreshStale = "stale"
	RefreshError = "error"
)

// RefreshRun records one CSV fetch attempt.
type RefreshRun struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	Generation uint64    `json:"generation"`
	Status     string    `json:"status"`
	RowCount   int       `json:"rowCount"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
