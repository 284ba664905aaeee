package moderation

import (
	"testing"

	"github.com/talentboard/moderation-backend/internal/models"
)

func newTestEngine() *Engine {
	return NewEngine(NewDefaultSpamScorer(), DefaultPolicy())
}

func scamPosting() *models.JobPosting {
	return &models.JobPosting{
		Title:       "Remote opportunity",
		Description: "Earn $500 daily! Work from home, no experience needed. WhatsApp me at 555-123-4567",
	}
}

func TestDecideFlagsSpamRegardlessOfCompany(t *testing.T) {
	engine := newTestEngine()

	for _, verification := range []string{
		models.VerificationApproved,
		models.VerificationPending,
		models.VerificationRejected,
		models.VerificationResubmitted,
	} {
		verdict := engine.Decide(scamPosting(), verification)
		if verdict.Status != models.ModerationFlagged {
			t.Fatalf("company %q: expected flagged, got %q", verification, verdict.Status)
		}
		if !verdict.Flagged {
			t.Fatalf("company %q: expected Flagged=true", verification)
		}
		if verdict.AutoApproved {
			t.Fatalf("company %q: spam-flagged posting must never be auto-approved", verification)
		}
		if len(verdict.FlagReasons) == 0 {
			t.Fatalf("company %q: expected flag reasons", verification)
		}
	}
}

func TestDecideAutoApproves(t *testing.T) {
	engine := newTestEngine()
	verdict := engine.Decide(completePosting(), models.VerificationApproved)

	if verdict.Status != models.ModerationApproved {
		t.Fatalf("expected approved, got %q", verdict.Status)
	}
	if !verdict.AutoApproved {
		t.Fatal("expected auto_approved=true")
	}
	if verdict.QualityScore != 100 {
		t.Fatalf("expected quality 100, got %d", verdict.QualityScore)
	}
	if verdict.SpamScore != 0 {
		t.Fatalf("expected spam 0, got %d", verdict.SpamScore)
	}
	if verdict.Flagged || len(verdict.FlagReasons) != 0 {
		t.Fatalf("expected clean verdict, got flagged=%v reasons=%v", verdict.Flagged, verdict.FlagReasons)
	}
}

func TestDecideAutoApprovalRequiresAllThreeConditions(t *testing.T) {
	engine := newTestEngine()

	t.Run("unverified company", func(t *testing.T) {
		verdict := engine.Decide(completePosting(), models.VerificationPending)
		if verdict.Status != models.ModerationPending || verdict.AutoApproved {
			t.Fatalf("expected pending without auto-approval, got %q auto=%v", verdict.Status, verdict.AutoApproved)
		}
	})

	t.Run("low quality", func(t *testing.T) {
		// Title + salary + experience + location only: quality 50, below the 70 bar.
		posting := &models.JobPosting{
			Title:           "Backend Engineer",
			Salary:          90000,
			ExperienceLevel: 2,
			Location:        "Berlin",
		}
		verdict := engine.Decide(posting, models.VerificationApproved)
		if verdict.QualityScore >= engine.Policy().AutoApproveMinQuality {
			t.Fatalf("test posting scored too high: %d", verdict.QualityScore)
		}
		if verdict.Status != models.ModerationPending || verdict.AutoApproved {
			t.Fatalf("expected pending without auto-approval, got %q auto=%v", verdict.Status, verdict.AutoApproved)
		}
	})

	t.Run("elevated spam", func(t *testing.T) {
		// Two suspicious patterns put spam at exactly 30: below the flag
		// threshold but not under the auto-approval bar.
		posting := completePosting()
		posting.Description += " Pays $40 per hour, whatsapp me on signal."
		verdict := engine.Decide(posting, models.VerificationApproved)
		if verdict.SpamScore < engine.Policy().AutoApproveMaxSpam || verdict.SpamScore >= engine.Policy().SpamFlagThreshold {
			t.Fatalf("test posting spam score out of band: %d", verdict.SpamScore)
		}
		if verdict.Status != models.ModerationPending || verdict.AutoApproved {
			t.Fatalf("expected pending without auto-approval, got %q auto=%v", verdict.Status, verdict.AutoApproved)
		}
	})
}

func TestDecideFailsClosed(t *testing.T) {
	// A nil scorer panics inside Decide; the verdict must degrade to manual
	// review instead of approving or crashing.
	engine := NewEngine(nil, DefaultPolicy())
	verdict := engine.Decide(completePosting(), models.VerificationApproved)

	if verdict.Status != models.ModerationPending {
		t.Fatalf("expected pending fallback, got %q", verdict.Status)
	}
	if verdict.AutoApproved || verdict.Flagged {
		t.Fatalf("fallback verdict must be conservative: %+v", verdict)
	}
	if verdict.QualityScore != 0 || verdict.SpamScore != 0 {
		t.Fatalf("fallback verdict must carry zero scores: %+v", verdict)
	}
}

func TestVerdictApply(t *testing.T) {
	posting := &models.JobPosting{IsActive: true}
	verdict := Verdict{
		Status:       models.ModerationFlagged,
		QualityScore: 40,
		SpamScore:    80,
		Flagged:      true,
		FlagReasons:  []string{"Contains 3 spam keyword(s)"},
	}
	verdict.Apply(posting)

	if posting.ModerationStatus != models.ModerationFlagged {
		t.Fatalf("unexpected status %q", posting.ModerationStatus)
	}
	if posting.IsActive {
		t.Fatal("flagged posting must be deactivated")
	}
	if posting.QualityScore != 40 || posting.SpamScore != 80 {
		t.Fatalf("scores not applied: %d/%d", posting.QualityScore, posting.SpamScore)
	}
	if len(posting.FlagReasons) != 1 {
		t.Fatalf("flag reasons not applied: %v", posting.FlagReasons)
	}
}
