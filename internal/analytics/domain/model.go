package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEvent is a fire-and-forget tracking row. Ingest is deliberately
// forgiving; malformed events are dropped, never rejected.
type AnalyticsEvent struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	TenantID   *int64            `json:"tenant_id,omitempty" gorm:"index:ix_analytics_events_tenant"`
	EventName  string            `json:"event_name" gorm:"type:text;not null"`
	Properties datatypes.JSONMap `json:"properties,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AnalyticsEvent) TableName() string { return "analytics_events" }
