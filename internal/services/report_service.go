package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/talentboard/moderation-backend/internal/dto"
	"github.com/talentboard/moderation-backend/internal/models"
	"github.com/talentboard/moderation-backend/internal/moderation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportService persists report ledger mutations. Filing and resolution run
// inside a transaction holding a row lock on the posting, so the
// count-pending / compare-threshold / write-status sequence and the
// duplicate-reporter check always observe a consistent snapshot; concurrent
// filings on the same posting serialize on the lock.
type ReportService struct {
	db     *gorm.DB
	engine *moderation.Engine
}

func NewReportService(db *gorm.DB, engine *moderation.Engine) *ReportService {
	return &ReportService{db: db, engine: engine}
}

func (s *ReportService) FileReport(postingID, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	var filed *models.Report

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posting, err := lockPosting(tx, postingID)
		if err != nil {
			return err
		}

		report, err := s.engine.FileReport(posting, reporterID, req.Reason, req.Description, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		if err := savePostingModeration(tx, posting); err != nil {
			return err
		}

		filed = report
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("report filed",
		"posting_id", postingID.String(),
		"report_id", filed.ID.String(),
		"reason", filed.Reason)

	return filed, nil
}

func (s *ReportService) ResolveReport(reportID uuid.UUID, req *dto.ResolveReportRequest) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return moderation.ErrReportNotFound
			}
			return err
		}

		posting, err := lockPosting(tx, report.PostingID)
		if err != nil {
			return err
		}

		if err := s.engine.ResolveReport(posting, reportID, req.Outcome, req.Action); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": req.Outcome}
		if req.AdminNote != "" {
			updates["admin_note"] = req.AdminNote
		}
		if err := tx.Model(&models.Report{}).Where("id = ?", reportID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}

		return savePostingModeration(tx, posting)
	})
	if err != nil {
		return err
	}

	slog.Info("report resolved",
		"report_id", reportID.String(),
		"outcome", req.Outcome,
		"action", req.Action)

	return nil
}

func (s *ReportService) ListReports(status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// lockPosting loads the posting under SELECT ... FOR UPDATE together with its
// report ledger.
func lockPosting(tx *gorm.DB, postingID uuid.UUID) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&posting, "id = ?", postingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}

	if err := tx.Where("posting_id = ?", postingID).Order("created_at ASC").Find(&posting.Reports).Error; err != nil {
		return nil, fmt.Errorf("failed to load report ledger: %w", err)
	}
	return &posting, nil
}

func savePostingModeration(tx *gorm.DB, posting *models.JobPosting) error {
	err := tx.Model(&models.JobPosting{}).
		Where("id = ?", posting.ID).
		Updates(map[string]interface{}{
			"moderation_status": posting.ModerationStatus,
			"flagged":           posting.Flagged,
			"is_active":         posting.IsActive,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update posting moderation state: %w", err)
	}
	return nil
}
