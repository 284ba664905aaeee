package models

import (
	"time"

	"github.com/google/uuid"
)

// Company verification states, owned by the company-management collaborator.
// This engine only reads them.
const (
	VerificationPending     = "pending"
	VerificationApproved    = "approved"
	VerificationRejected    = "rejected"
	VerificationResubmitted = "resubmitted"
)

type Company struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	VerificationStatus string    `gorm:"size:20;not null;default:'pending'" json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
