// Package compliance implements the per-student approval gate: a student
// must submit documents and be approved by an admin before alumni profiles
// become visible to them.
package compliance

import (
	"obnavi/backend/internal/apperr"
	"obnavi/backend/internal/models"
)

var (
	ErrUserNotFound    = apperr.NotFound("USER_NOT_FOUND", "user not found")
	ErrProfileNotFound = apperr.NotFound("PROFILE_NOT_FOUND", "student profile not found")
	ErrBadTransition   = apperr.BadRequest("BAD_TRANSITION", "compliance status does not allow this action")
	ErrDocsRequired    = apperr.BadRequest("DOCS_REQUIRED", "at least one document is required")
)

// Store is the persistence slice the gate needs.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	GetStudentProfile(userID string) (*models.StudentProfile, error)
	SaveStudentProfile(p *models.StudentProfile) error
}

// Notifier dispatches compliance decision notifications.
type Notifier interface {
	Dispatch(userID string, typ models.NotificationType, title, body, link string)
}

// Service implements the gate.
type Service struct {
	store    Store
	notifier Notifier
}

// NewService wires the gate dependencies.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// CanViewAlumni reports whether alumni profiles are visible to the user.
// Non-students are unaffected by the gate.
func (s *Service) CanViewAlumni(user *models.User) (bool, error) {
	if user.Role != models.RoleStudent {
		return true, nil
	}
	profile, err := s.store.GetStudentProfile(user.ID)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}
	return profile.ComplianceStatus == models.ComplianceApproved, nil
}

// Submit moves a student from pending (or rejected, for a resubmission) to
// submitted with their agreement flag and document URLs.
func (s *Service) Submit(userID string, docURLs []string) (*models.StudentProfile, error) {
	if len(docURLs) == 0 {
		return nil, ErrDocsRequired
	}
	profile, err := s.store.GetStudentProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.ComplianceStatus != models.CompliancePending &&
		profile.ComplianceStatus != models.ComplianceRejected {
		return nil, ErrBadTransition
	}

	profile.ComplianceAgreed = true
	profile.ComplianceStatus = models.ComplianceSubmitted
	profile.ComplianceDocURLs = docURLs
	if err := s.store.SaveStudentProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Review applies an admin approval or rejection and notifies the student.
func (s *Service) Review(userID string, approve bool, notes string) (*models.StudentProfile, error) {
	profile, err := s.store.GetStudentProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if approve {
		profile.ComplianceStatus = models.ComplianceApproved
	} else {
		profile.ComplianceStatus = models.ComplianceRejected
	}
	profile.ComplianceNotes = notes
	if err := s.store.SaveStudentProfile(profile); err != nil {
		return nil, err
	}

	title := "Your compliance submission was approved"
	if !approve {
		title = "Your compliance submission was rejected"
	}
	s.notifier.Dispatch(userID, models.NotifyCompliance, title, notes, "/compliance")

	return profile, nil
}
