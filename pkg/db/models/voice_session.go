package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// VoiceSession is one voice-agent conversation. CallerPhone is stored in
// E.164 or not at all; the schema enforces the format.
type VoiceSession struct {
	ID          uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID  uuid.UUID                `gorm:"column:business_id;type:uuid;not null"`
	ContactID   *uuid.UUID               `gorm:"column:contact_id;type:uuid"`
	CallerPhone *string                  `gorm:"column:caller_phone"`
	Direction   enums.CallDirection      `gorm:"column:direction;not null;default:'inbound'"`
	Status      enums.VoiceSessionStatus `gorm:"column:status;not null;default:'in_progress'"`
	Transcript  string                   `gorm:"column:transcript;not null;default:''"`
	Summary     string                   `gorm:"column:summary;not null;default:''"`
	Metadata    types.JSONMap            `gorm:"column:metadata;type:jsonb"`
	StartedAt   time.Time                `gorm:"column:started_at;not null"`
	EndedAt     *time.Time               `gorm:"column:ended_at"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// VoiceCallLog is one timestamped event within a session (call answered,
// transfer, agent handoff).
type VoiceCallLog struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID  uuid.UUID     `gorm:"column:session_id;type:uuid;not null"`
	EventType  string        `gorm:"column:event_type;not null"`
	Payload    types.JSONMap `gorm:"column:payload;type:jsonb"`
	OccurredAt time.Time     `gorm:"column:occurred_at;not null"`
}
