package messaging

import (
	"context"

	"github.com/stretchr/testify/mock"

	"obnavi/backend/internal/billing"
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

func (m *MockStore) IsUserBanned(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetThreadByID(id string) (*models.Thread, error) {
	args := m.Called(id)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStore) ThreadBetween(userA, userB string) (*models.Thread, error) {
	args := m.Called(userA, userB)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStore) FindOrCreateThread(userA, userB string) (*models.Thread, error) {
	args := m.Called(userA, userB)
	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *MockStore) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	if msg.ID == "" {
		msg.ID = "m1"
	}
	return args.Error(0)
}

func (m *MockStore) DeductCredits(userID string, amount int) (bool, error) {
	args := m.Called(userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) RefundCredits(userID string, amount int) error {
	args := m.Called(userID, amount)
	return args.Error(0)
}

func (m *MockStore) CreateCharge(c *models.Charge) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStore) PublishUserEvent(userID string, payload []byte) error {
	args := m.Called(userID, payload)
	return args.Error(0)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ChargeMessage(customerID, paymentMethodID string, amountJPY int64, description string) (*billing.ChargeResult, error) {
	args := m.Called(customerID, paymentMethodID, amountJPY, description)
	res, _ := args.Get(0).(*billing.ChargeResult)
	return res, args.Error(1)
}

func (m *MockProvider) CreateCheckoutSession(userID, pack string, credits int, priceJPY int64) (*billing.CheckoutResult, error) {
	args := m.Called(userID, pack, credits, priceJPY)
	res, _ := args.Get(0).(*billing.CheckoutResult)
	return res, args.Error(1)
}

func (m *MockProvider) GetCheckoutSession(sessionID string) (*billing.CheckoutState, error) {
	args := m.Called(sessionID)
	res, _ := args.Get(0).(*billing.CheckoutState)
	return res, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(userID string, typ models.NotificationType, title, body, link string) {
	m.Called(userID, typ, title, body, link)
}

var _ Store = (*MockStore)(nil)
var _ billing.Provider = (*MockProvider)(nil)
var _ Notifier = (*MockNotifier)(nil)

var testCtx = context.Background()
