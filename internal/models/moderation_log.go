package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ModerationLog stores structured error logs so flagged-posting incidents
// can be audited without trawling stdout.
type ModerationLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	PostingID string         `gorm:"size:36;index" json:"posting_id"`
	ReportID  string         `gorm:"size:36" json:"report_id"`
	UserID    *string        `gorm:"size:36" json:"user_id"`
	Action    string         `gorm:"size:100" json:"action"`
	Error     string         `gorm:"type:text" json:"error"`
	Extra     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}
