package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, event *AnalyticsEvent) error
}

type Service interface {
	// Ingest records an event best-effort. It never surfaces validation
	// errors: the HTTP contract is an unconditional accept.
	Ingest(ctx context.Context, req IngestRequest)
}

type IngestRequest struct {
	EventName  string         `json:"event_name"`
	Properties map[string]any `json:"properties"`
}
