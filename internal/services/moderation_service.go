package services

import (
	"errors"
	"fmt"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/cropcareai/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

func (s *ModerationService) CreateReport(reporterID *uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if req.TargetType != models.TargetPost && req.TargetType != models.TargetComment {
		return nil, ErrInvalidTarget
	}

	report := models.Report{
		ReporterID: reporterID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ModerationService) ListReports(resolved *bool, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if resolved != nil {
		query = query.Where("resolved = ?", *resolved)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ModerationService) ResolveReport(reportID uuid.UUID, resolved bool) error {
	result := s.db.Model(&models.Report{}).
		Where("id = ?", reportID).
		Update("resolved", resolved)
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return result.Error
}
