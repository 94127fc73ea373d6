package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"obnavi/backend/internal/models"
)

func TestGetMeetingNullWhenAbsent(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("GetBookingByThreadID", "t1").Return(nil, nil)

	w := doJSON(r, http.MethodGet, "/api/meetings/t1", tokenFor(t, h, "student", models.RoleStudent), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Nil(t, data["meeting"])
}

func TestScheduleMeetingCreatesBooking(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("GetBookingByThreadID", "t1").Return(nil, nil)
	store.On("GetUserByID", "student").Return(&models.User{ID: "student", Role: models.RoleStudent}, nil)
	store.On("GetUserByID", "obog").Return(&models.User{ID: "obog", Role: models.RoleOBOG}, nil)
	store.On("CreateBookingIfAbsent", mock.Anything).Return(&models.Booking{
		ID: "b1", ThreadID: "t1", StudentID: "student", OBOGID: "obog",
		MeetingStatus: models.MeetingUnconfirmed,
	}, nil)
	store.On("SaveBooking", mock.Anything).Return(nil)

	w := doJSON(r, http.MethodPost, "/api/meetings/t1", tokenFor(t, h, "student", models.RoleStudent),
		gin.H{"meetingUrl": "https://meet.example/abc"})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataField(t, w)
	meeting := data["meeting"].(map[string]interface{})
	assert.Equal(t, "b1", meeting["id"])
}

func TestUpdateMeetingConfirm(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	booking := &models.Booking{ID: "b1", ThreadID: "t1", StudentID: "student", OBOGID: "obog",
		Status: models.MeetingUnconfirmed, MeetingStatus: models.MeetingUnconfirmed}
	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("GetBookingByThreadID", "t1").Return(booking, nil)
	store.On("SaveBooking", booking).Return(nil)

	w := doJSON(r, http.MethodPut, "/api/meetings/t1", tokenFor(t, h, "obog", models.RoleOBOG),
		gin.H{"action": "confirm"})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataField(t, w)
	meeting := data["meeting"].(map[string]interface{})
	assert.Equal(t, string(models.MeetingConfirmed), meeting["meetingStatus"])
}

func TestUpdateMeetingUnknownAction(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	w := doJSON(r, http.MethodPut, "/api/meetings/t1", tokenFor(t, h, "student", models.RoleStudent),
		gin.H{"action": "teleport"})

	assertErrorCode(t, w, http.StatusBadRequest, "UNKNOWN_ACTION")
}

func TestUpdateMeetingInvalidTransition(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	booking := &models.Booking{ID: "b1", ThreadID: "t1", StudentID: "student", OBOGID: "obog",
		Status: models.MeetingCancelled, MeetingStatus: models.MeetingCancelled}
	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("GetBookingByThreadID", "t1").Return(booking, nil)

	w := doJSON(r, http.MethodPut, "/api/meetings/t1", tokenFor(t, h, "student", models.RoleStudent),
		gin.H{"action": "cancel"})

	assertErrorCode(t, w, http.StatusBadRequest, "INVALID_TRANSITION")
}
