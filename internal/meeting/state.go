package meeting

import (
	"time"

	"obnavi/backend/internal/models"
)

// applyPostStatus records one party's post-meeting report on the booking and
// recomputes the overall meeting status. It returns true when the overall
// status changed.
//
// Completion rule: the meeting is completed once the student reports
// completed and the alumnus has either also reported completed or never
// reported at all. A no-show report from either party forces no-show
// immediately.
func applyPostStatus(b *models.Booking, asStudent bool, status models.PostStatus, at time.Time) bool {
	if asStudent {
		b.StudentPostStatus = status
		b.StudentPostStatusAt = &at
	} else {
		b.OBOGPostStatus = status
		b.OBOGPostStatusAt = &at
	}

	if status == models.PostNoShow {
		if b.MeetingStatus == models.MeetingNoShow {
			return false
		}
		b.MeetingStatus = models.MeetingNoShow
		b.Status = models.MeetingNoShow
		return true
	}

	if completionReached(b) && b.MeetingStatus != models.MeetingCompleted {
		b.MeetingStatus = models.MeetingCompleted
		b.Status = models.MeetingCompleted
		return true
	}
	return false
}

func completionReached(b *models.Booking) bool {
	if b.StudentPostStatus != models.PostCompleted {
		return false
	}
	return b.OBOGPostStatus == models.PostCompleted || b.OBOGPostStatus == models.PostNone
}
