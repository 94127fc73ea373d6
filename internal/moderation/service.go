// Package moderation provides the admin-side business logic: strikes with
// automatic banning, report triage and Corporate-OB company assignment.
package moderation

import (
	"fmt"
	"strings"
	"time"

	"obnavi/backend/internal/apperr"
	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
)

var (
	ErrUserNotFound   = apperr.NotFound("USER_NOT_FOUND", "user not found")
	ErrReportNotFound = apperr.NotFound("REPORT_NOT_FOUND", "report not found")
	ErrBadStatus      = apperr.BadRequest("BAD_STATUS", "unknown report status")
	ErrReasonRequired = apperr.BadRequest("REASON_REQUIRED", "reason is required")
)

// Store is the persistence slice moderation needs.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	SaveUser(user *models.User) error
	AddStrike(userID string) (strikes int, banned bool, err error)
	SetBanned(userID string, banned bool) error

	CreateReport(r *models.Report) error
	GetReportByID(id string) (*models.Report, error)
	ListReports(status models.ReportStatus) ([]models.Report, error)
	ListReportsByReporter(reporterID string) ([]models.Report, error)
	SaveReport(r *models.Report) error

	GetOBOGProfile(userID string) (*models.OBOGProfile, error)
	SaveOBOGProfile(p *models.OBOGProfile) error
	ListCorporateOBs() ([]models.User, error)
}

// Notifier dispatches user-facing notifications.
type Notifier interface {
	Dispatch(userID string, typ models.NotificationType, title, body, link string)
}

// Alerter pushes ops alerts (report filed, auto-ban triggered) to the admin
// channel. Best-effort.
type Alerter interface {
	Alert(text string)
}

// StrikeResult is returned to the admin panel after adding a strike.
type StrikeResult struct {
	UserID  string `json:"userId"`
	Strikes int    `json:"strikes"`
	Banned  bool   `json:"banned"`
}

// Service implements the moderation flows.
type Service struct {
	store    Store
	notifier Notifier
	alerter  Alerter
}

// NewService wires the moderation dependencies. alerter may be nil.
func NewService(store Store, notifier Notifier, alerter Alerter) *Service {
	return &Service{store: store, notifier: notifier, alerter: alerter}
}

// AddStrike applies one strike. Reaching the maximum bans the user in the
// same store operation; the user is warned and the ops channel alerted.
func (s *Service) AddStrike(userID string) (*StrikeResult, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	strikes, banned, err := s.store.AddStrike(userID)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("You have received a strike (%d/%d)", strikes, models.MaxStrikes)
	if banned {
		title = "Your account has been suspended"
		s.alert(fmt.Sprintf("auto-ban: user %s (%s) reached %d strikes", user.Name, userID, strikes))
	}
	s.notifier.Dispatch(userID, models.NotifyStrikeWarning, title, "", "/settings")

	return &StrikeResult{UserID: userID, Strikes: strikes, Banned: banned}, nil
}

// SetBanned flips the ban flag directly (admin ban/unban endpoints).
func (s *Service) SetBanned(userID string, banned bool) error {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.store.SetBanned(userID, banned)
}

// FileReport creates a report from any authenticated user and alerts the
// ops channel.
func (s *Service) FileReport(reporterID, targetUserID, threadID, reason, detail string) (*models.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	r := &models.Report{
		ReporterID:   reporterID,
		TargetUserID: targetUserID,
		ThreadID:     threadID,
		Reason:       reason,
		Detail:       detail,
	}
	if err := s.store.CreateReport(r); err != nil {
		return nil, err
	}
	s.alert(fmt.Sprintf("new report %s: %s", r.ID, reason))
	return r, nil
}

// ListReports is the admin triage view, optionally filtered by status.
func (s *Service) ListReports(status models.ReportStatus) ([]models.Report, error) {
	if status != "" && !models.ValidReportStatus(status) {
		return nil, ErrBadStatus
	}
	return s.store.ListReports(status)
}

// ListOwnReports returns the reports a user filed.
func (s *Service) ListOwnReports(reporterID string) ([]models.Report, error) {
	return s.store.ListReportsByReporter(reporterID)
}

// UpdateReport applies an admin triage transition with optional notes.
func (s *Service) UpdateReport(reportID string, status models.ReportStatus, notes string) (*models.Report, error) {
	if !models.ValidReportStatus(status) {
		return nil, ErrBadStatus
	}
	r, err := s.store.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReportNotFound
	}

	r.Status = status
	if notes != "" {
		stamp := time.Now().Format("2006-01-02 15:04")
		if r.AdminNotes != "" {
			r.AdminNotes += "\n"
		}
		r.AdminNotes += fmt.Sprintf("[%s] %s", stamp, notes)
	}
	if err := s.store.SaveReport(r); err != nil {
		return nil, err
	}
	return r, nil
}

// CorporateOBAssignment carries an admin's corporate-OB update. Zero-value
// fields leave the stored values untouched.
type CorporateOBAssignment struct {
	UserID                 string
	CompanyID              string
	Verified               *bool
	StripeCustomerID       string
	DefaultPaymentMethodID string
}

// AssignCorporateOB associates an alumnus with a company and provisions the
// billing identity the per-message charge needs. Verification is toggled
// independently of the assignment (nil leaves it untouched).
func (s *Service) AssignCorporateOB(in CorporateOBAssignment) (*models.OBOGProfile, error) {
	user, err := s.store.GetUserByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if in.StripeCustomerID != "" || in.DefaultPaymentMethodID != "" {
		if in.StripeCustomerID != "" {
			user.StripeCustomerID = in.StripeCustomerID
		}
		if in.DefaultPaymentMethodID != "" {
			user.DefaultPaymentMethodID = in.DefaultPaymentMethodID
		}
		if err := s.store.SaveUser(user); err != nil {
			return nil, err
		}
	}

	profile, err := s.store.GetOBOGProfile(in.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.OBOGProfile{UserID: in.UserID}
	}

	if in.CompanyID != "" {
		profile.CompanyID = in.CompanyID
	}
	if in.Verified != nil {
		profile.Verified = *in.Verified
	}
	if err := s.store.SaveOBOGProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListCorporateOBs returns the corporate user rows for the admin panel.
func (s *Service) ListCorporateOBs() ([]models.User, error) {
	return s.store.ListCorporateOBs()
}

func (s *Service) alert(text string) {
	if s.alerter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Warnf("ops alert panicked: %v", r)
		}
	}()
	s.alerter.Alert(text)
}
