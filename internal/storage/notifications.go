package storage

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"obnavi/backend/internal/models"
)

// CreateNotification writes an in-app notification row.
func (s *Service) CreateNotification(n *models.Notification) error {
	return s.DB.Create(n).Error
}

// ListNotificationsForUser returns the owner's notifications, newest first.
func (s *Service) ListNotificationsForUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	q := s.DB.Where("user_id = ?", userID).Order("created_at desc")
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var ns []models.Notification
	if err := q.Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationRead flips the read flag; scoped to the owner so one user
// cannot touch another's rows.
func (s *Service) MarkNotificationRead(id, userID string) error {
	now := time.Now()
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllNotificationsRead flips every unread row for the owner.
func (s *Service) MarkAllNotificationsRead(userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

// EnqueueEmail pushes a serialized email envelope onto a delivery queue.
func (s *Service) EnqueueEmail(queue string, payload []byte) error {
	if s.Redis == nil {
		return errors.New("redis not configured")
	}
	return s.Redis.RPush(s.Ctx, "email_queue:"+queue, payload).Err()
}

// DrainEmailQueue pops everything currently on a delivery queue.
func (s *Service) DrainEmailQueue(queue string) ([][]byte, error) {
	if s.Redis == nil {
		return nil, errors.New("redis not configured")
	}
	key := "email_queue:" + queue
	var out [][]byte
	for {
		val, err := s.Redis.LPop(s.Ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, val)
	}
}

// ClaimCheckoutSession marks a checkout session as credited. Returns false
// when another request already claimed it, which makes crediting
// once-per-session.
func (s *Service) ClaimCheckoutSession(sessionID string, ttl time.Duration) (bool, error) {
	if s.Redis == nil {
		return false, errors.New("redis not configured")
	}
	return s.Redis.SetNX(s.Ctx, "checkout:"+sessionID, "1", ttl).Result()
}

// PublishUserEvent publishes a realtime event onto the user's channel.
func (s *Service) PublishUserEvent(userID string, payload []byte) error {
	if s.Redis == nil {
		return errors.New("redis not configured")
	}
	return s.Redis.Publish(s.Ctx, "user_events:"+userID, payload).Err()
}

// SubscribeUserEvents subscribes to every user's realtime channel. The hub
// fans messages out to connected clients.
func (s *Service) SubscribeUserEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "user_events:*")
}
