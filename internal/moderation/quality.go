package moderation

import (
	"strings"

	"github.com/talentboard/moderation-backend/internal/models"
)

// Quality scoring is an additive point budget across independent signals.
// Each signal is capped on its own and the sum is clamped to 100; the budget
// intentionally leaves headroom for future signals. Malformed or missing
// fields score zero for their signal instead of failing — moderation must
// always produce a verdict.
const maxSalary = 10_000_000

// ScoreQuality rates posting content in [0,100]. Pure, never fails.
func ScoreQuality(p *models.JobPosting) int {
	score := 0

	titleLen := len(strings.TrimSpace(p.Title))
	switch {
	case titleLen >= 10 && titleLen <= 100:
		score += 15
	case titleLen >= 5 && titleLen <= 9:
		score += 8
	case titleLen > 100:
		score += 5
	}

	descLen := len(strings.TrimSpace(p.Description))
	switch {
	case descLen >= 200 && descLen <= 5000:
		score += 25
	case descLen >= 100 && descLen <= 199:
		score += 15
	case descLen >= 50 && descLen <= 99:
		score += 8
	}

	reqCount := 0
	for _, r := range p.Requirements {
		if strings.TrimSpace(r) != "" {
			reqCount++
		}
	}
	switch {
	case reqCount >= 5:
		score += 15
	case reqCount >= 3:
		score += 10
	case reqCount >= 1:
		score += 5
	}

	if p.Salary > 0 {
		if p.Salary < maxSalary {
			score += 15
		} else {
			score += 5
		}
	}

	if p.ExperienceLevel >= 0 {
		score += 10
	}

	if len(strings.TrimSpace(p.Location)) >= 3 {
		score += 10
	}

	if p.Positions > 0 && p.Positions <= 100 {
		score += 10
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
