package models

import (
	"time"

	"github.com/google/uuid"
)

// Report reasons accepted from users.
const (
	ReasonSpam          = "spam"
	ReasonInappropriate = "inappropriate"
	ReasonFraud         = "fraud"
	ReasonDuplicate     = "duplicate"
	ReasonOther         = "other"
)

// Report lifecycle statuses.
const (
	ReportPending   = "pending"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

// Report is one user's flag of a posting. At most one pending report per
// (posting, reporter) pair exists at any time.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostingID   uuid.UUID `gorm:"type:uuid;not null;index" json:"posting_id"`
	ReportedBy  uuid.UUID `gorm:"type:uuid;not null;index" json:"reported_by"`
	Reason      string    `gorm:"not null;size:50" json:"reason"`
	Description string    `gorm:"size:1000" json:"description"`
	Status      string    `gorm:"not null;default:'pending';size:20;index" json:"status"`
	AdminNote   string    `gorm:"size:1000" json:"admin_note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
