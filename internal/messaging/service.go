// Package messaging implements the send flow: role restrictions, the two
// billing tracks (credit deduction for standard users, per-message provider
// charges for Corporate-OB) and the best-effort side effects around a send.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"obnavi/backend/internal/apperr"
	"obnavi/backend/internal/billing"
	"obnavi/backend/internal/config"
	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
	"obnavi/backend/internal/translation"
)

// Send failures surfaced to the client, with the codes it branches on.
var (
	ErrContentRequired = apperr.BadRequest("CONTENT_REQUIRED", "content is required")
	ErrBadTarget       = apperr.BadRequest("BAD_TARGET", "provide exactly one of toUserId or threadId")
	ErrThreadNotFound  = apperr.NotFound("THREAD_NOT_FOUND", "thread not found")
	ErrUserNotFound    = apperr.NotFound("USER_NOT_FOUND", "recipient not found")
	ErrNotParticipant  = apperr.Forbidden("NOT_PARTICIPANT", "not a participant of this thread")
	ErrAccountSuspended = apperr.Forbidden("ACCOUNT_SUSPENDED", "account is suspended")

	ErrAlumniCannotInitiate = apperr.Forbidden("ALUMNI_CANNOT_INITIATE",
		"alumni cannot start new conversations")
	ErrStudentCannotInitiateCorpOB = apperr.Forbidden("STUDENT_CANNOT_INITIATE_CORP_OB",
		"students cannot start conversations with corporate alumni")

	ErrInsufficientCredits = apperr.PaymentRequired("INSUFFICIENT_CREDITS",
		"not enough credits to send a message")
	ErrNoPaymentMethod = apperr.PaymentRequired("NO_PAYMENT_METHOD",
		"no payment method on file")
)

// Store is the persistence slice the send flow needs.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	IsUserBanned(userID string) (bool, error)
	GetThreadByID(id string) (*models.Thread, error)
	ThreadBetween(userA, userB string) (*models.Thread, error)
	FindOrCreateThread(userA, userB string) (*models.Thread, error)
	CreateMessage(msg *models.Message) error
	DeductCredits(userID string, amount int) (bool, error)
	RefundCredits(userID string, amount int) error
	CreateCharge(c *models.Charge) error
	PublishUserEvent(userID string, payload []byte) error
}

// Notifier dispatches a notification to a user. Implemented by the
// notification dispatcher; failures never surface here.
type Notifier interface {
	Dispatch(userID string, typ models.NotificationType, title, body, link string)
}

// SendInput is the request contract for one send.
type SendInput struct {
	SenderID string
	Content  string
	ToUserID string
	ThreadID string
}

// SendResult is returned for client display.
type SendResult struct {
	Message         *models.Message `json:"message"`
	ThreadID        string          `json:"threadId"`
	CreditsDeducted int             `json:"creditsDeducted"`
	AmountCharged   int64           `json:"amountCharged"`
}

// Service runs the send flow.
type Service struct {
	store      Store
	translator translation.Translator
	provider   billing.Provider
	notifier   Notifier
}

// NewService wires the send flow dependencies.
func NewService(store Store, tr translation.Translator, provider billing.Provider, notifier Notifier) *Service {
	return &Service{store: store, translator: tr, provider: provider, notifier: notifier}
}

// Send validates, bills, persists and fans out one message. On the
// Corporate-OB track the message may already be persisted when a payment
// error comes back; the partial result is returned alongside it.
func (s *Service) Send(ctx context.Context, in SendInput) (*SendResult, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrContentRequired
	}
	if (in.ToUserID == "") == (in.ThreadID == "") {
		return nil, ErrBadTarget
	}

	sender, err := s.store.GetUserByID(in.SenderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}
	if banned, err := s.store.IsUserBanned(sender.ID); err != nil {
		return nil, err
	} else if banned {
		return nil, ErrAccountSuspended
	}

	thread, recipientID, err := s.resolveThread(sender, in)
	if err != nil {
		return nil, err
	}

	// Branch A: standard senders pay credits up front, atomically.
	deducted := 0
	if sender.Role != models.RoleCorporateOB {
		ok, err := s.store.DeductCredits(sender.ID, config.MessageCreditCost)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInsufficientCredits
		}
		deducted = config.MessageCreditCost
	}

	msg := &models.Message{ThreadID: thread.ID, SenderID: sender.ID}
	content := s.translator.Translate(ctx, in.Content)
	if err := msg.SetContent(content); err != nil {
		return nil, err
	}
	if err := s.store.CreateMessage(msg); err != nil {
		if deducted > 0 {
			if rerr := s.store.RefundCredits(sender.ID, deducted); rerr != nil {
				logger.Log.Errorf("credit refund failed for %s: %v", sender.ID, rerr)
			}
		}
		return nil, err
	}

	result := &SendResult{Message: msg, ThreadID: thread.ID, CreditsDeducted: deducted}

	// Branch B: Corporate-OB senders are charged per message after the
	// persist. A failed charge is recorded for manual billing and the send
	// stands.
	if sender.Role == models.RoleCorporateOB {
		if err := s.chargeCorporate(sender, msg, result); err != nil {
			s.fanOut(thread, sender, recipientID, msg)
			return result, err
		}
	}

	s.fanOut(thread, sender, recipientID, msg)
	return result, nil
}

// resolveThread applies the role restrictions and returns the thread plus
// the recipient.
func (s *Service) resolveThread(sender *models.User, in SendInput) (*models.Thread, string, error) {
	if in.ThreadID != "" {
		thread, err := s.store.GetThreadByID(in.ThreadID)
		if err != nil {
			return nil, "", err
		}
		if thread == nil {
			return nil, "", ErrThreadNotFound
		}
		if !thread.HasParticipant(sender.ID) {
			return nil, "", ErrNotParticipant
		}
		return thread, thread.OtherParticipant(sender.ID), nil
	}

	// Alumni never address by recipient: replies go through the thread id,
	// and a recipient-addressed send is an initiation attempt.
	if sender.Role == models.RoleOBOG {
		return nil, "", ErrAlumniCannotInitiate
	}

	recipient, err := s.store.GetUserByID(in.ToUserID)
	if err != nil {
		return nil, "", err
	}
	if recipient == nil {
		return nil, "", ErrUserNotFound
	}

	existing, err := s.store.ThreadBetween(sender.ID, recipient.ID)
	if err != nil {
		return nil, "", err
	}

	// The student restriction only bites when no thread exists yet.
	if existing == nil && sender.Role == models.RoleStudent && recipient.Role == models.RoleCorporateOB {
		return nil, "", ErrStudentCannotInitiateCorpOB
	}

	thread := existing
	if thread == nil {
		thread, err = s.store.FindOrCreateThread(sender.ID, recipient.ID)
		if err != nil {
			return nil, "", err
		}
	}
	return thread, recipient.ID, nil
}

func (s *Service) chargeCorporate(sender *models.User, msg *models.Message, result *SendResult) error {
	if sender.StripeCustomerID == "" || sender.DefaultPaymentMethodID == "" {
		s.recordCharge(sender.ID, msg.ID, "", models.ChargeFailed, "no payment method on file")
		return ErrNoPaymentMethod
	}

	desc := fmt.Sprintf("Corporate-OB message %s", msg.ID)
	res, err := s.provider.ChargeMessage(sender.StripeCustomerID, sender.DefaultPaymentMethodID,
		config.CorporateMessageFeeJPY, desc)
	if err != nil {
		logger.Log.Errorf("corporate charge failed for message %s: %v", msg.ID, err)
		s.recordCharge(sender.ID, msg.ID, "", models.ChargeFailed, err.Error())
		// Manual billing picks up the failed charge; the send stands.
		return nil
	}

	status := models.ChargePending
	if res.Succeeded {
		status = models.ChargeSucceeded
		result.AmountCharged = config.CorporateMessageFeeJPY
	}
	s.recordCharge(sender.ID, msg.ID, res.ProviderID, status, "")
	return nil
}

func (s *Service) recordCharge(userID, messageID, providerID string, status models.ChargeStatus, reason string) {
	charge := &models.Charge{
		UserID:           userID,
		MessageID:        messageID,
		AmountJPY:        config.CorporateMessageFeeJPY,
		ProviderChargeID: providerID,
		Status:           status,
		FailureReason:    reason,
	}
	if err := s.store.CreateCharge(charge); err != nil {
		logger.Log.Errorf("failed to record charge for message %s: %v", messageID, err)
	}
}

// fanOut delivers the best-effort side effects: recipient notification and
// the realtime event.
func (s *Service) fanOut(thread *models.Thread, sender *models.User, recipientID string, msg *models.Message) {
	s.notifier.Dispatch(recipientID, models.NotifyNewMessage,
		fmt.Sprintf("New message from %s", sender.Name), "", "/messages/"+thread.ID)

	payload, err := json.Marshal(map[string]interface{}{
		"event":    "message.created",
		"threadId": thread.ID,
		"message":  msg,
	})
	if err != nil {
		return
	}
	if err := s.store.PublishUserEvent(recipientID, payload); err != nil {
		logger.Log.Debugf("realtime publish failed for %s: %v", recipientID, err)
	}
}
