// Package meeting tracks the scheduled-call lifecycle tied 1:1 to a message
// thread: unconfirmed -> confirmed -> completed/no-show, with cancellation
// from any non-terminal state.
package meeting

import (
	"time"

	"obnavi/backend/internal/apperr"
	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
)

var (
	ErrThreadNotFound    = apperr.NotFound("THREAD_NOT_FOUND", "thread not found")
	ErrBookingNotFound   = apperr.NotFound("BOOKING_NOT_FOUND", "no booking for this thread")
	ErrNotParticipant    = apperr.Forbidden("NOT_PARTICIPANT", "not a participant of this thread")
	ErrInvalidTransition = apperr.BadRequest("INVALID_TRANSITION", "booking state does not allow this action")
)

// Store is the persistence slice the booking flow needs.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	GetThreadByID(id string) (*models.Thread, error)
	GetBookingByThreadID(threadID string) (*models.Booking, error)
	CreateBookingIfAbsent(b *models.Booking) (*models.Booking, error)
	SaveBooking(b *models.Booking) error
}

// Notifier dispatches meeting notifications.
type Notifier interface {
	Dispatch(userID string, typ models.NotificationType, title, body, link string)
}

// Service runs the booking flow.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// NewService wires the booking flow dependencies.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// Get returns the booking for a thread, or nil when none exists — a missing
// booking is not an error. Participant-or-admin only.
func (s *Service) Get(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	if _, err := s.authorizeThread(threadID, callerID, isAdmin); err != nil {
		return nil, err
	}
	return s.store.GetBookingByThreadID(threadID)
}

// Schedule finds or creates the booking for a thread and applies optional
// date/time and URL updates. The non-initiating party is notified.
func (s *Service) Schedule(threadID, callerID string, isAdmin bool, dateTime *time.Time, meetingURL string) (*models.Booking, error) {
	thread, err := s.authorizeThread(threadID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	booking, err := s.store.GetBookingByThreadID(threadID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		studentID, obogID, err := s.resolveParties(thread)
		if err != nil {
			return nil, err
		}
		booking, err = s.store.CreateBookingIfAbsent(&models.Booking{
			ThreadID:  threadID,
			StudentID: studentID,
			OBOGID:    obogID,
		})
		if err != nil {
			return nil, err
		}
	}

	if booking.MeetingStatus.Terminal() {
		return nil, ErrInvalidTransition
	}

	if dateTime != nil {
		booking.BookingDateTime = dateTime
	}
	if meetingURL != "" {
		booking.MeetingURL = meetingURL
	}
	if err := s.store.SaveBooking(booking); err != nil {
		return nil, err
	}

	if other := s.otherParty(booking, callerID); other != "" {
		s.notifier.Dispatch(other, models.NotifyMeetingScheduled,
			"A meeting has been proposed", "", "/messages/"+threadID)
	}
	return booking, nil
}

// Confirm moves the booking from unconfirmed to confirmed and notifies both
// parties.
func (s *Service) Confirm(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.loadBooking(threadID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.MeetingStatus != models.MeetingUnconfirmed {
		return nil, ErrInvalidTransition
	}

	booking.Status = models.MeetingConfirmed
	booking.MeetingStatus = models.MeetingConfirmed
	if err := s.store.SaveBooking(booking); err != nil {
		return nil, err
	}

	s.notifyBoth(booking, models.NotifyMeetingConfirmed, "Your meeting is confirmed")
	return booking, nil
}

// Complete records the caller's own completed report. Both parties are
// notified only when the overall status transitions to completed.
func (s *Service) Complete(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.loadBooking(threadID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.MeetingStatus.Terminal() {
		return nil, ErrInvalidTransition
	}

	transitioned := applyPostStatus(booking, callerID == booking.StudentID, models.PostCompleted, s.now())
	if err := s.store.SaveBooking(booking); err != nil {
		return nil, err
	}
	if transitioned {
		s.notifyBoth(booking, models.NotifyMeetingCompleted, "Your meeting is marked completed")
	}
	return booking, nil
}

// MarkNoShow records the caller's no-show report, which forces the overall
// status unilaterally, and notifies the other party.
func (s *Service) MarkNoShow(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.loadBooking(threadID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.MeetingStatus.Terminal() && booking.MeetingStatus != models.MeetingNoShow {
		return nil, ErrInvalidTransition
	}

	applyPostStatus(booking, callerID == booking.StudentID, models.PostNoShow, s.now())
	if err := s.store.SaveBooking(booking); err != nil {
		return nil, err
	}

	if other := s.otherParty(booking, callerID); other != "" {
		s.notifier.Dispatch(other, models.NotifyMeetingNoShow,
			"Your meeting was reported as a no-show", "", "/messages/"+threadID)
	}
	return booking, nil
}

// Cancel is terminal and allowed from any non-terminal state, for either
// participant or an admin. Both parties are notified.
func (s *Service) Cancel(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.loadBooking(threadID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.MeetingStatus.Terminal() {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	booking.Status = models.MeetingCancelled
	booking.MeetingStatus = models.MeetingCancelled
	booking.CancelledBy = callerID
	booking.CancelledAt = &now
	if err := s.store.SaveBooking(booking); err != nil {
		return nil, err
	}

	s.notifyBoth(booking, models.NotifyMeetingCancelled, "Your meeting was cancelled")
	return booking, nil
}

// AcknowledgeOnly covers the legacy actions (accept_terms,
// submit_evaluation, submit_additional_question) that have no fields on the
// booking row: the current booking is returned unchanged.
func (s *Service) AcknowledgeOnly(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	return s.loadBooking(threadID, callerID, isAdmin)
}

func (s *Service) loadBooking(threadID, callerID string, isAdmin bool) (*models.Booking, error) {
	if _, err := s.authorizeThread(threadID, callerID, isAdmin); err != nil {
		return nil, err
	}
	booking, err := s.store.GetBookingByThreadID(threadID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *Service) authorizeThread(threadID, callerID string, isAdmin bool) (*models.Thread, error) {
	thread, err := s.store.GetThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}
	if !isAdmin && !thread.HasParticipant(callerID) {
		return nil, ErrNotParticipant
	}
	return thread, nil
}

// resolveParties decides which participant is the student and which the
// alumnus from their stored roles. When neither holds the expected role the
// participant order is used and a warning is logged.
func (s *Service) resolveParties(thread *models.Thread) (studentID, obogID string, err error) {
	u1, err := s.store.GetUserByID(thread.User1ID)
	if err != nil {
		return "", "", err
	}
	u2, err := s.store.GetUserByID(thread.User2ID)
	if err != nil {
		return "", "", err
	}

	switch {
	case u1 != nil && u1.Role == models.RoleStudent:
		return thread.User1ID, thread.User2ID, nil
	case u2 != nil && u2.Role == models.RoleStudent:
		return thread.User2ID, thread.User1ID, nil
	case u1 != nil && u1.IsAlumni():
		return thread.User2ID, thread.User1ID, nil
	case u2 != nil && u2.IsAlumni():
		return thread.User1ID, thread.User2ID, nil
	}

	logger.Log.Warnf("booking for thread %s: neither participant has a student or alumni role, using participant order", thread.ID)
	return thread.User1ID, thread.User2ID, nil
}

func (s *Service) otherParty(b *models.Booking, callerID string) string {
	switch callerID {
	case b.StudentID:
		return b.OBOGID
	case b.OBOGID:
		return b.StudentID
	}
	// Admin-initiated: notify the student side.
	return b.StudentID
}

func (s *Service) notifyBoth(b *models.Booking, typ models.NotificationType, title string) {
	s.notifier.Dispatch(b.StudentID, typ, title, "", "/messages/"+b.ThreadID)
	s.notifier.Dispatch(b.OBOGID, typ, title, "", "/messages/"+b.ThreadID)
}
