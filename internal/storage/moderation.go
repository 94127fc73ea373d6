package storage

import (
	"errors"

	"gorm.io/gorm"

	"obnavi/backend/internal/models"
)

// CreateCharge records a Corporate-OB per-message payment attempt.
func (s *Service) CreateCharge(c *models.Charge) error {
	return s.DB.Create(c).Error
}

// ListChargesForUser returns a sender's charge history, newest first.
func (s *Service) ListChargesForUser(userID string) ([]models.Charge, error) {
	var charges []models.Charge
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").Find(&charges).Error
	if err != nil {
		return nil, err
	}
	return charges, nil
}

// CreateReport files a new report in the pending state.
func (s *Service) CreateReport(r *models.Report) error {
	if r.Status == "" {
		r.Status = models.ReportPending
	}
	return s.DB.Create(r).Error
}

// GetReportByID loads a report. Returns (nil, nil) when absent.
func (s *Service) GetReportByID(id string) (*models.Report, error) {
	var r models.Report
	err := s.DB.Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReports returns reports for admin triage, optionally filtered by
// status (empty status means all).
func (s *Service) ListReports(status models.ReportStatus) ([]models.Report, error) {
	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reports []models.Report
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListReportsByReporter returns the reports a user has filed.
func (s *Service) ListReportsByReporter(reporterID string) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("reporter_id = ?", reporterID).
		Order("created_at desc").Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// SaveReport persists triage updates.
func (s *Service) SaveReport(r *models.Report) error {
	return s.DB.Save(r).Error
}
