package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Moderation status values for a job posting.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationFlagged  = "flagged"
)

// JobPosting carries the listing content plus the moderation verdict
// produced at creation/edit time. Visibility (IsActive) is only ever
// toggled by the escalation controller, never deleted.
type JobPosting struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   Company   `gorm:"foreignKey:CompanyID" json:"-"`

	Title           string                      `gorm:"size:255;not null" json:"title"`
	Description     string                      `gorm:"type:text" json:"description"`
	Requirements    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"requirements"`
	Salary          float64                     `json:"salary"`
	ExperienceLevel int                         `json:"experience_level"`
	Location        string                      `gorm:"size:255" json:"location"`
	Positions       int                         `gorm:"default:1" json:"positions"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	ModerationStatus string                      `gorm:"size:20;not null;default:'pending';index" json:"moderation_status"`
	QualityScore     int                         `json:"quality_score"`
	SpamScore        int                         `json:"spam_score"`
	AutoApproved     bool                        `json:"auto_approved"`
	Flagged          bool                        `json:"flagged"`
	FlagReasons      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"flag_reasons"`

	Reports []Report `gorm:"foreignKey:PostingID" json:"reports,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PendingReportCount scans the loaded report ledger. Ledgers are small
// (bounded by realistic report volume per posting), so a linear scan is fine.
func (p *JobPosting) PendingReportCount() int {
	count := 0
	for _, r := range p.Reports {
		if r.Status == ReportPending {
			count++
		}
	}
	return count
}
