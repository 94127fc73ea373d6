package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"obnavi/backend/internal/billing"
	"obnavi/backend/internal/compliance"
	"obnavi/backend/internal/meeting"
	"obnavi/backend/internal/messaging"
	"obnavi/backend/internal/models"
	"obnavi/backend/internal/moderation"
	"obnavi/backend/internal/translation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// nopNotifier satisfies every service's Notifier interface.
type nopNotifier struct{}

func (nopNotifier) Dispatch(string, models.NotificationType, string, string, string) {}

// stubProvider implements billing.Provider with swappable functions.
type stubProvider struct {
	charge  func(customerID, paymentMethodID string, amountJPY int64, description string) (*billing.ChargeResult, error)
	create  func(userID, pack string, credits int, priceJPY int64) (*billing.CheckoutResult, error)
	session func(sessionID string) (*billing.CheckoutState, error)
}

func (p *stubProvider) ChargeMessage(customerID, paymentMethodID string, amountJPY int64, description string) (*billing.ChargeResult, error) {
	if p.charge == nil {
		return nil, fmt.Errorf("unexpected ChargeMessage call")
	}
	return p.charge(customerID, paymentMethodID, amountJPY, description)
}

func (p *stubProvider) CreateCheckoutSession(userID, pack string, credits int, priceJPY int64) (*billing.CheckoutResult, error) {
	if p.create == nil {
		return nil, fmt.Errorf("unexpected CreateCheckoutSession call")
	}
	return p.create(userID, pack, credits, priceJPY)
}

func (p *stubProvider) GetCheckoutSession(sessionID string) (*billing.CheckoutState, error) {
	if p.session == nil {
		return nil, fmt.Errorf("unexpected GetCheckoutSession call")
	}
	return p.session(sessionID)
}

var _ billing.Provider = (*stubProvider)(nil)

// newTestRouter wires a full router against the mock storage, the way main
// does against the real one.
func newTestRouter(store *MockStorage, provider *stubProvider) (*gin.Engine, *Handler) {
	if provider == nil {
		provider = &stubProvider{}
	}
	h := NewHandler(
		store,
		messaging.NewService(store, translation.Noop{}, provider, nopNotifier{}),
		meeting.NewService(store, nopNotifier{}),
		moderation.NewService(store, nopNotifier{}, nil),
		compliance.NewService(store, nopNotifier{}),
		provider,
		nil,
		nil,
		"test-secret",
	)
	r := gin.New()
	RegisterRoutes(r, h)
	return r, h
}

func tokenFor(t *testing.T, h *Handler, userID string, role models.Role) string {
	t.Helper()
	token, err := h.GenerateToken(userID, role)
	assert.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// dataField digs the {data: {...}} envelope.
func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	assert.True(t, ok, "response has no data envelope: %s", w.Body.String())
	return data
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, code, body["code"], w.Body.String())
	assert.NotEmpty(t, body["error"])
}
