package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/talentboard/moderation-backend/internal/models"
)

// DefaultSpamKeywords are matched against the lowercased posting corpus.
// Tuned for job-listing scams: work-from-home bait, MLM terms, and
// payment-redirect phrases.
var DefaultSpamKeywords = []string{
	"work from home", "make money fast", "quick money", "easy money",
	"earn money online", "no experience needed", "no experience necessary",
	"be your own boss", "unlimited income", "guaranteed income",
	"passive income", "instant payout",
	"mlm", "multi-level marketing", "network marketing", "pyramid",
	"registration fee", "processing fee", "training fee", "upfront payment",
	"wire transfer", "western union", "moneygram", "cash app",
	"crypto wallet",
}

// DefaultSuspiciousPatterns flag unrealistic pay rates, off-platform contact
// solicitation, raw phone numbers, shortened URLs, and bare links.
var DefaultSuspiciousPatterns = []string{
	`(?i)\$\s*\d+\s*(?:per\s+|/|an?\s+)?(?:hour|hr|day|daily|week|weekly)`,
	`(?i)(?:whatsapp|telegram|signal|viber)\s*(?:me|us)?\s*(?:at|on|@|:)`,
	`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`,
	`(?i)(?:bit\.ly|tinyurl\.com|goo\.gl|t\.co|rb\.gy)/\S+`,
	`(?i)(https?://\S+|www\.\S+\.\S+)`,
}

// SpamScorer rates postings against injected keyword and pattern lists.
// Patterns are compiled once at construction; invalid patterns are skipped.
type SpamScorer struct {
	keywords []string
	patterns []*regexp.Regexp
}

func NewSpamScorer(keywords []string, patterns []string) *SpamScorer {
	s := &SpamScorer{keywords: keywords}
	s.patterns = make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err == nil {
			s.patterns = append(s.patterns, re)
		}
	}
	return s
}

func NewDefaultSpamScorer() *SpamScorer {
	return NewSpamScorer(DefaultSpamKeywords, DefaultSuspiciousPatterns)
}

// Score rates posting content for spam risk in [0,100] with human-readable
// reasons. Pure, deterministic, never fails.
func (s *SpamScorer) Score(p *models.JobPosting) (int, []string) {
	raw := p.Title + " " + p.Description + " " + strings.Join(p.Requirements, " ")
	corpus := strings.ToLower(raw)

	score := 0
	reasons := []string{}

	keywordHits := 0
	for _, kw := range s.keywords {
		if strings.Contains(corpus, kw) {
			keywordHits++
		}
	}
	if keywordHits > 0 {
		score += min(keywordHits*10, 40)
		reasons = append(reasons, fmt.Sprintf("Contains %d spam keyword(s)", keywordHits))
	}

	patternHits := 0
	for _, re := range s.patterns {
		if re.MatchString(raw) {
			patternHits++
		}
	}
	if patternHits > 0 {
		score += min(patternHits*15, 30)
		reasons = append(reasons, fmt.Sprintf("Contains %d suspicious pattern(s)", patternHits))
	}

	if len(p.Title) > 10 && uppercaseRatio(p.Title) > 0.5 {
		score += 15
		reasons = append(reasons, "Excessive capitalization in title")
	}

	if p.Salary > maxSalary {
		score += 15
		reasons = append(reasons, "Unrealistic salary amount")
	} else if p.ExperienceLevel == 0 && p.Salary > 5_000_000 {
		score += 10
		reasons = append(reasons, "Unrealistic salary for experience level")
	}

	return clampScore(score), reasons
}

// uppercaseRatio measures uppercase letters against all letters in s.
// Non-letter runes are ignored so punctuation-heavy titles are not penalized.
func uppercaseRatio(s string) float64 {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
