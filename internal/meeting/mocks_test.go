package meeting

import (
	"github.com/stretchr/testify/mock"

	"obnavi/backend/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStore) GetThreadByID(id string) (*models.Thread, error) {
	args := m.Called(id)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStore) GetBookingByThreadID(threadID string) (*models.Booking, error) {
	args := m.Called(threadID)
	booking, _ := args.Get(0).(*models.Booking)
	return booking, args.Error(1)
}

func (m *MockStore) CreateBookingIfAbsent(b *models.Booking) (*models.Booking, error) {
	args := m.Called(b)
	booking, _ := args.Get(0).(*models.Booking)
	return booking, args.Error(1)
}

func (m *MockStore) SaveBooking(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(userID string, typ models.NotificationType, title, body, link string) {
	m.Called(userID, typ, title, body, link)
}
