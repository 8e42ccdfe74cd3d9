package domain

import "time"

type MessageStatus string

const (
	StatusQueued MessageStatus = "queued"
	StatusSent   MessageStatus = "sent"
	StatusFailed MessageStatus = "failed"
)

// WhatsAppMessage is the outbound log; the current-month count of these
// rows backs the whatsapp usage limit.
type WhatsAppMessage struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	TenantID  int64         `json:"tenant_id" gorm:"not null;index:ix_whatsapp_messages_tenant"`
	ToPhone   string        `json:"to_phone" gorm:"type:text;not null"`
	Body      string        `json:"body" gorm:"type:text;not null"`
	Status    MessageStatus `json:"status" gorm:"type:text;not null;default:'queued'"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index:ix_whatsapp_messages_created"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (WhatsAppMessage) TableName() string { return "whatsapp_messages" }
