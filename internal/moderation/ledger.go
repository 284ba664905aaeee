package moderation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/talentboard/moderation-backend/internal/models"
)

var (
	ErrInvalidReason   = errors.New("invalid report reason")
	ErrDuplicateReport = errors.New("reporter already has a pending report on this posting")
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidOutcome  = errors.New("invalid resolution outcome")
)

// ActionFlag on a resolved report forces the posting into the flagged state
// regardless of the remaining pending count.
const ActionFlag = "flag"

var validReasons = map[string]bool{
	models.ReasonSpam:          true,
	models.ReasonInappropriate: true,
	models.ReasonFraud:         true,
	models.ReasonDuplicate:     true,
	models.ReasonOther:         true,
}

// FileReport appends a pending report to the posting's ledger and runs the
// escalation check. The caller must present a consistent snapshot of the
// posting and its reports and persist the mutation atomically; concurrent
// filings on the same posting must be serialized around this call.
func (e *Engine) FileReport(p *models.JobPosting, reporterID uuid.UUID, reason, description string, now time.Time) (*models.Report, error) {
	if !validReasons[reason] {
		return nil, ErrInvalidReason
	}
	for i := range p.Reports {
		if p.Reports[i].ReportedBy == reporterID && p.Reports[i].Status == models.ReportPending {
			return nil, ErrDuplicateReport
		}
	}

	report := models.Report{
		ID:          uuid.New(),
		PostingID:   p.ID,
		ReportedBy:  reporterID,
		Reason:      reason,
		Description: description,
		Status:      models.ReportPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Reports = append(p.Reports, report)

	e.escalate(p)

	return &p.Reports[len(p.Reports)-1], nil
}

// ResolveReport applies an administrator's outcome to a single report and
// reconciles posting visibility. De-escalation is deliberately conservative:
// a flag is only reversed when a dismissal clears the entire pending backlog,
// so a posting stays down while credible reports remain outstanding.
func (e *Engine) ResolveReport(p *models.JobPosting, reportID uuid.UUID, outcome, action string) error {
	if outcome != models.ReportResolved && outcome != models.ReportDismissed {
		return ErrInvalidOutcome
	}

	var target *models.Report
	for i := range p.Reports {
		if p.Reports[i].ID == reportID {
			target = &p.Reports[i]
			break
		}
	}
	if target == nil {
		return ErrReportNotFound
	}

	target.Status = outcome

	if outcome == models.ReportResolved && action == ActionFlag {
		// Administrative override: the report was credible enough to pull
		// the posting no matter how many other reports remain.
		p.ModerationStatus = models.ModerationFlagged
		p.Flagged = true
		p.IsActive = false
		return nil
	}

	if outcome == models.ReportDismissed &&
		p.PendingReportCount() == 0 &&
		p.ModerationStatus == models.ModerationFlagged {
		p.ModerationStatus = models.ModerationApproved
		p.Flagged = false
		p.IsActive = true
	}

	return nil
}

// escalate is a one-way latch per occurrence: crossing the pending threshold
// re-triggers the transition even after a prior de-escalation.
func (e *Engine) escalate(p *models.JobPosting) {
	if p.PendingReportCount() >= e.policy.ReportEscalationThreshold &&
		p.ModerationStatus != models.ModerationFlagged {
		p.ModerationStatus = models.ModerationFlagged
		p.Flagged = true
		p.IsActive = false
	}
}
