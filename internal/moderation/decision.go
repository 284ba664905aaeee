package moderation

import (
	"log/slog"

	"github.com/talentboard/moderation-backend/internal/models"
)

// Policy holds the moderation thresholds. Values come from config; the
// defaults match the production tuning.
type Policy struct {
	// SpamFlagThreshold flags a posting outright, regardless of company
	// verification or quality.
	SpamFlagThreshold int
	// AutoApproveMinQuality and AutoApproveMaxSpam gate auto-approval,
	// layered on top of an approved company verification.
	AutoApproveMinQuality int
	AutoApproveMaxSpam    int
	// ReportEscalationThreshold is the pending-report count that deactivates
	// a posting.
	ReportEscalationThreshold int
}

func DefaultPolicy() Policy {
	return Policy{
		SpamFlagThreshold:         50,
		AutoApproveMinQuality:     70,
		AutoApproveMaxSpam:        30,
		ReportEscalationThreshold: 3,
	}
}

// Verdict is the moderation outcome for a newly submitted or edited posting.
type Verdict struct {
	Status       string   `json:"status"`
	QualityScore int      `json:"quality_score"`
	SpamScore    int      `json:"spam_score"`
	AutoApproved bool     `json:"auto_approved"`
	Flagged      bool     `json:"flagged"`
	FlagReasons  []string `json:"flag_reasons"`
}

// Engine combines the scorers and policy into the decision core. It holds no
// mutable state; all methods are safe for concurrent use.
type Engine struct {
	spam   *SpamScorer
	policy Policy
}

func NewEngine(spam *SpamScorer, policy Policy) *Engine {
	return &Engine{spam: spam, policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Decide produces the initial verdict for a posting. Spam disqualification is
// absolute: a verified company can still post a scam-shaped listing.
// Auto-approval requires an approved company AND high quality AND low spam
// risk — verification alone is insufficient. Decide never fails; an
// unexpected panic degrades to a pending verdict so manual review catches
// what automation could not score.
func (e *Engine) Decide(p *models.JobPosting, companyVerification string) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("moderation decision panicked, falling back to manual review",
				"posting_id", p.ID.String(), "panic", r)
			v = Verdict{Status: models.ModerationPending, FlagReasons: []string{}}
		}
	}()

	quality := ScoreQuality(p)
	spam, reasons := e.spam.Score(p)

	if spam >= e.policy.SpamFlagThreshold {
		return Verdict{
			Status:       models.ModerationFlagged,
			QualityScore: quality,
			SpamScore:    spam,
			Flagged:      true,
			FlagReasons:  reasons,
		}
	}

	if companyVerification == models.VerificationApproved &&
		quality >= e.policy.AutoApproveMinQuality &&
		spam < e.policy.AutoApproveMaxSpam {
		return Verdict{
			Status:       models.ModerationApproved,
			QualityScore: quality,
			SpamScore:    spam,
			AutoApproved: true,
			FlagReasons:  []string{},
		}
	}

	return Verdict{
		Status:       models.ModerationPending,
		QualityScore: quality,
		SpamScore:    spam,
		FlagReasons:  []string{},
	}
}

// Apply writes the verdict onto the posting. A flagged verdict also pulls the
// posting from listings.
func (v Verdict) Apply(p *models.JobPosting) {
	p.ModerationStatus = v.Status
	p.QualityScore = v.QualityScore
	p.SpamScore = v.SpamScore
	p.AutoApproved = v.AutoApproved
	p.Flagged = v.Flagged
	p.FlagReasons = v.FlagReasons
	if v.Flagged {
		p.IsActive = false
	}
}
