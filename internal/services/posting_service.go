package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/talentboard/moderation-backend/internal/dto"
	"github.com/talentboard/moderation-backend/internal/models"
	"github.com/talentboard/moderation-backend/internal/moderation"
	"gorm.io/gorm"
)

var (
	ErrPostingNotFound = errors.New("posting not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrNotPostingOwner = errors.New("posting belongs to another company")
)

// PostingService runs the moderation decision engine at posting creation and
// edit time and persists the verdict onto the posting.
type PostingService struct {
	db     *gorm.DB
	engine *moderation.Engine
}

func NewPostingService(db *gorm.DB, engine *moderation.Engine) *PostingService {
	return &PostingService{db: db, engine: engine}
}

func (s *PostingService) Create(companyID uuid.UUID, req *dto.CreatePostingRequest) (*models.JobPosting, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	posting := models.JobPosting{
		CompanyID:       companyID,
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          req.Salary,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		Positions:       req.Positions,
		IsActive:        true,
	}

	verdict := s.engine.Decide(&posting, company.VerificationStatus)
	verdict.Apply(&posting)

	if err := s.db.Create(&posting).Error; err != nil {
		return nil, fmt.Errorf("failed to create posting: %w", err)
	}

	slog.Info("posting moderated",
		"posting_id", posting.ID.String(),
		"status", verdict.Status,
		"quality_score", verdict.QualityScore,
		"spam_score", verdict.SpamScore,
		"auto_approved", verdict.AutoApproved)

	return &posting, nil
}

// Update replaces the posting content and re-runs the decision engine; edits
// get a fresh verdict just like new submissions.
func (s *PostingService) Update(postingID, companyID uuid.UUID, req *dto.UpdatePostingRequest) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := s.db.First(&posting, "id = ?", postingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	if posting.CompanyID != companyID {
		return nil, ErrNotPostingOwner
	}

	var company models.Company
	if err := s.db.First(&company, "id = ?", posting.CompanyID).Error; err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	posting.Title = req.Title
	posting.Description = req.Description
	posting.Requirements = req.Requirements
	posting.Salary = req.Salary
	posting.ExperienceLevel = req.ExperienceLevel
	posting.Location = req.Location
	posting.Positions = req.Positions

	verdict := s.engine.Decide(&posting, company.VerificationStatus)
	verdict.Apply(&posting)

	if err := s.db.Save(&posting).Error; err != nil {
		return nil, fmt.Errorf("failed to update posting: %w", err)
	}

	slog.Info("posting re-moderated",
		"posting_id", posting.ID.String(),
		"status", verdict.Status,
		"quality_score", verdict.QualityScore,
		"spam_score", verdict.SpamScore)

	return &posting, nil
}

func (s *PostingService) Get(postingID uuid.UUID) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := s.db.First(&posting, "id = ?", postingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	return &posting, nil
}

// ListFlagged returns the admin review queue, newest first, with the report
// ledger preloaded so reviewers see the flag reasons alongside user reports.
func (s *PostingService) ListFlagged(limit, offset int) ([]models.JobPosting, int64, error) {
	var postings []models.JobPosting
	var total int64

	query := s.db.Model(&models.JobPosting{}).Where("moderation_status = ?", models.ModerationFlagged)
	query.Count(&total)

	err := query.Preload("Reports").
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&postings).Error
	if err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}
