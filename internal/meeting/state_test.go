package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"obnavi/backend/internal/models"
)

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:            "b1",
		ThreadID:      "t1",
		StudentID:     "student",
		OBOGID:        "obog",
		Status:        models.MeetingConfirmed,
		MeetingStatus: models.MeetingConfirmed,
	}
}

// The student's report alone finalizes the meeting when the alumnus never
// responds.
func TestCompletionStudentAloneSuffices(t *testing.T) {
	b := confirmedBooking()

	transitioned := applyPostStatus(b, true, models.PostCompleted, time.Now())

	assert.True(t, transitioned)
	assert.Equal(t, models.MeetingCompleted, b.MeetingStatus)
	assert.Equal(t, models.PostCompleted, b.StudentPostStatus)
	assert.NotNil(t, b.StudentPostStatusAt)
	assert.Equal(t, models.PostNone, b.OBOGPostStatus)
}

// The alumnus reporting completed first does not finalize anything; the
// student's report is authoritative.
func TestCompletionWaitsForStudent(t *testing.T) {
	b := confirmedBooking()

	transitioned := applyPostStatus(b, false, models.PostCompleted, time.Now())

	assert.False(t, transitioned)
	assert.Equal(t, models.MeetingConfirmed, b.MeetingStatus)

	transitioned = applyPostStatus(b, true, models.PostCompleted, time.Now())

	assert.True(t, transitioned)
	assert.Equal(t, models.MeetingCompleted, b.MeetingStatus)
}

// A student completion after an alumnus no-show must not produce completed:
// no-show already won.
func TestNoShowBeatsLaterCompletion(t *testing.T) {
	b := confirmedBooking()

	transitioned := applyPostStatus(b, false, models.PostNoShow, time.Now())
	assert.True(t, transitioned)
	assert.Equal(t, models.MeetingNoShow, b.MeetingStatus)
}

// Either party's no-show report forces the overall status immediately.
func TestNoShowIsUnilateral(t *testing.T) {
	for _, asStudent := range []bool{true, false} {
		b := confirmedBooking()

		transitioned := applyPostStatus(b, asStudent, models.PostNoShow, time.Now())

		assert.True(t, transitioned)
		assert.Equal(t, models.MeetingNoShow, b.MeetingStatus)
		assert.Equal(t, models.MeetingNoShow, b.Status)
	}
}

// A repeated no-show report is not a second transition.
func TestNoShowIdempotentTransition(t *testing.T) {
	b := confirmedBooking()

	assert.True(t, applyPostStatus(b, false, models.PostNoShow, time.Now()))
	assert.False(t, applyPostStatus(b, true, models.PostNoShow, time.Now()))
	assert.Equal(t, models.MeetingNoShow, b.MeetingStatus)
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, models.MeetingUnconfirmed.Terminal())
	assert.False(t, models.MeetingConfirmed.Terminal())
	assert.True(t, models.MeetingCompleted.Terminal())
	assert.True(t, models.MeetingNoShow.Terminal())
	assert.True(t, models.MeetingCancelled.Terminal())
}
