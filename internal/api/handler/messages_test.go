package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"obnavi/backend/internal/config"
	"obnavi/backend/internal/models"
)

func threadFixture() *models.Thread {
	return &models.Thread{ID: "t1", User1ID: "student", User2ID: "obog"}
}

func TestSendMessageHappyPath(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetUserByID", "student").
		Return(&models.User{ID: "student", Role: models.RoleStudent, Credits: 50}, nil)
	store.On("IsUserBanned", "student").Return(false, nil)
	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("DeductCredits", "student", config.MessageCreditCost).Return(true, nil)
	store.On("CreateMessage", mock.Anything).Return(nil)
	store.On("PublishUserEvent", "obog", mock.Anything).Return(nil)

	w := doJSON(r, http.MethodPost, "/api/messages", tokenFor(t, h, "student", models.RoleStudent),
		gin.H{"content": "hello", "threadId": "t1"})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataField(t, w)
	assert.Equal(t, float64(config.MessageCreditCost), data["creditsDeducted"])
	assert.Equal(t, "t1", data["threadId"])
}

func TestSendMessageInsufficientCredits(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetUserByID", "student").
		Return(&models.User{ID: "student", Role: models.RoleStudent, Credits: 5}, nil)
	store.On("IsUserBanned", "student").Return(false, nil)
	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("DeductCredits", "student", config.MessageCreditCost).Return(false, nil)

	w := doJSON(r, http.MethodPost, "/api/messages", tokenFor(t, h, "student", models.RoleStudent),
		gin.H{"content": "hello", "threadId": "t1"})

	assertErrorCode(t, w, http.StatusPaymentRequired, "INSUFFICIENT_CREDITS")
	store.AssertNotCalled(t, "CreateMessage", mock.Anything)
}

func TestSendMessageAlumniInitiationBlocked(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetUserByID", "obog").
		Return(&models.User{ID: "obog", Role: models.RoleOBOG, Credits: 50}, nil)
	store.On("IsUserBanned", "obog").Return(false, nil)

	w := doJSON(r, http.MethodPost, "/api/messages", tokenFor(t, h, "obog", models.RoleOBOG),
		gin.H{"content": "hello", "toUserId": "student"})

	assertErrorCode(t, w, http.StatusForbidden, "ALUMNI_CANNOT_INITIATE")
}

func TestListThreadsReturnsInbox(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("ListThreadsForUser", "student").Return([]models.ThreadSummary{
		{Thread: *threadFixture(), UnreadCount: 2},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/messages", tokenFor(t, h, "student", models.RoleStudent), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	threads := data["threads"].([]interface{})
	assert.Len(t, threads, 1)
}

func TestListThreadsAdminSeesAll(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("ListAllThreads").Return([]models.Thread{*threadFixture()}, nil)

	w := doJSON(r, http.MethodGet, "/api/messages", tokenFor(t, h, "admin", models.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertNotCalled(t, "ListThreadsForUser", mock.Anything)
}

func TestListMessagesMarksThreadRead(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("ListMessages", "t1").Return([]models.Message{}, nil)
	store.On("MarkThreadRead", "t1", "student").Return(nil)

	w := doJSON(r, http.MethodGet, "/api/messages/t1", tokenFor(t, h, "student", models.RoleStudent), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertCalled(t, "MarkThreadRead", "t1", "student")
}

func TestListMessagesOutsiderForbidden(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)

	w := doJSON(r, http.MethodGet, "/api/messages/t1", tokenFor(t, h, "stranger", models.RoleStudent), nil)

	assertErrorCode(t, w, http.StatusForbidden, "NOT_PARTICIPANT")
}

// Admins read threads without touching the participants' read state.
func TestListMessagesAdminReadOnly(t *testing.T) {
	store := new(MockStorage)
	r, h := newTestRouter(store, nil)

	store.On("GetThreadByID", "t1").Return(threadFixture(), nil)
	store.On("ListMessages", "t1").Return([]models.Message{}, nil)

	w := doJSON(r, http.MethodGet, "/api/messages/t1", tokenFor(t, h, "admin", models.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertNotCalled(t, "MarkThreadRead", mock.Anything, mock.Anything)
}
