package handler

import (
	"time"

	"github.com/stretchr/testify/mock"

	"obnavi/backend/internal/models"
	"obnavi/backend/internal/storage"
)

// MockStorage implements the full storage surface for handler tests. The
// same instance backs the domain services and the handler, so expectations
// cover the whole request path.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	if user.ID == "" {
		user.ID = "new-user"
	}
	return args.Error(0)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) DeductCredits(userID string, amount int) (bool, error) {
	args := m.Called(userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) RefundCredits(userID string, amount int) error {
	args := m.Called(userID, amount)
	return args.Error(0)
}

func (m *MockStorage) AddCredits(userID string, amount int) error {
	args := m.Called(userID, amount)
	return args.Error(0)
}

func (m *MockStorage) AddStrike(userID string) (int, bool, error) {
	args := m.Called(userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockStorage) SetBanned(userID string, banned bool) error {
	args := m.Called(userID, banned)
	return args.Error(0)
}

func (m *MockStorage) IsUserBanned(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetStudentProfile(userID string) (*models.StudentProfile, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(*models.StudentProfile)
	return p, args.Error(1)
}

func (m *MockStorage) SaveStudentProfile(p *models.StudentProfile) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStorage) GetOBOGProfile(userID string) (*models.OBOGProfile, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(*models.OBOGProfile)
	return p, args.Error(1)
}

func (m *MockStorage) SaveOBOGProfile(p *models.OBOGProfile) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStorage) GetCompanyProfile(userID string) (*models.CompanyProfile, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(*models.CompanyProfile)
	return p, args.Error(1)
}

func (m *MockStorage) SaveCompanyProfile(p *models.CompanyProfile) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStorage) ListOBOGProfiles() ([]models.OBOGProfile, error) {
	args := m.Called()
	profiles, _ := args.Get(0).([]models.OBOGProfile)
	return profiles, args.Error(1)
}

func (m *MockStorage) ListCorporateOBs() ([]models.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockStorage) GetThreadByID(id string) (*models.Thread, error) {
	args := m.Called(id)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStorage) ThreadBetween(userA, userB string) (*models.Thread, error) {
	args := m.Called(userA, userB)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStorage) FindOrCreateThread(userA, userB string) (*models.Thread, error) {
	args := m.Called(userA, userB)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStorage) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	if msg.ID == "" {
		msg.ID = "new-message"
	}
	return args.Error(0)
}

func (m *MockStorage) ListMessages(threadID string) ([]models.Message, error) {
	args := m.Called(threadID)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *MockStorage) MarkThreadRead(threadID, readerID string) error {
	args := m.Called(threadID, readerID)
	return args.Error(0)
}

func (m *MockStorage) ListThreadsForUser(userID string) ([]models.ThreadSummary, error) {
	args := m.Called(userID)
	summaries, _ := args.Get(0).([]models.ThreadSummary)
	return summaries, args.Error(1)
}

func (m *MockStorage) ListAllThreads() ([]models.Thread, error) {
	args := m.Called()
	threads, _ := args.Get(0).([]models.Thread)
	return threads, args.Error(1)
}

func (m *MockStorage) GetBookingByThreadID(threadID string) (*models.Booking, error) {
	args := m.Called(threadID)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockStorage) CreateBookingIfAbsent(b *models.Booking) (*models.Booking, error) {
	args := m.Called(b)
	created, _ := args.Get(0).(*models.Booking)
	return created, args.Error(1)
}

func (m *MockStorage) SaveBooking(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockStorage) CreateCharge(c *models.Charge) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) ListChargesForUser(userID string) ([]models.Charge, error) {
	args := m.Called(userID)
	charges, _ := args.Get(0).([]models.Charge)
	return charges, args.Error(1)
}

func (m *MockStorage) CreateReport(r *models.Report) error {
	args := m.Called(r)
	if r.ID == "" {
		r.ID = "new-report"
	}
	if r.Status == "" {
		r.Status = models.ReportPending
	}
	return args.Error(0)
}

func (m *MockStorage) GetReportByID(id string) (*models.Report, error) {
	args := m.Called(id)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *MockStorage) ListReports(status models.ReportStatus) ([]models.Report, error) {
	args := m.Called(status)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Error(1)
}

func (m *MockStorage) ListReportsByReporter(reporterID string) ([]models.Report, error) {
	args := m.Called(reporterID)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Error(1)
}

func (m *MockStorage) SaveReport(r *models.Report) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStorage) CreateNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) ListNotificationsForUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(userID, unreadOnly)
	ns, _ := args.Get(0).([]models.Notification)
	return ns, args.Error(1)
}

func (m *MockStorage) MarkNotificationRead(id, userID string) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockStorage) MarkAllNotificationsRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) EnqueueEmail(queue string, payload []byte) error {
	args := m.Called(queue, payload)
	return args.Error(0)
}

func (m *MockStorage) DrainEmailQueue(queue string) ([][]byte, error) {
	args := m.Called(queue)
	payloads, _ := args.Get(0).([][]byte)
	return payloads, args.Error(1)
}

func (m *MockStorage) ClaimCheckoutSession(sessionID string, ttl time.Duration) (bool, error) {
	args := m.Called(sessionID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) PublishUserEvent(userID string, payload []byte) error {
	args := m.Called(userID, payload)
	return args.Error(0)
}
