package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
)

// GetThreadByID loads a thread. Returns (nil, nil) when absent.
func (s *Service) GetThreadByID(id string) (*models.Thread, error) {
	var t models.Thread
	err := s.DB.Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ThreadBetween returns the existing thread for a participant pair, or
// (nil, nil) when the pair has never talked.
func (s *Service) ThreadBetween(userA, userB string) (*models.Thread, error) {
	var t models.Thread
	err := s.DB.Where("pair_key = ?", models.PairKeyFor(userA, userB)).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindOrCreateThread returns the one thread for a participant pair. The
// insert relies on the unique index on pair_key; a conflicting concurrent
// insert falls through to the fetch.
func (s *Service) FindOrCreateThread(userA, userB string) (*models.Thread, error) {
	t := &models.Thread{
		User1ID:       userA,
		User2ID:       userB,
		LastMessageAt: time.Now(),
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_key"}},
		DoNothing: true,
	}).Create(t)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return t, nil
	}
	// Lost the race (or the pair already existed): fetch the winner.
	return s.ThreadBetween(userA, userB)
}

// CreateMessage inserts the message and bumps the thread's last-activity
// timestamp.
func (s *Service) CreateMessage(msg *models.Message) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			logger.Log.Errorf("failed to save message for thread %s: %v", msg.ThreadID, err)
			return err
		}
		return tx.Model(&models.Thread{}).
			Where("id = ?", msg.ThreadID).
			UpdateColumn("last_message_at", msg.CreatedAt).Error
	})
}

// ListMessages returns a thread's messages oldest-first.
func (s *Service) ListMessages(threadID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Where("thread_id = ?", threadID).
		Order("created_at asc").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkThreadRead flags every message in the thread not sent by the reader.
func (s *Service) MarkThreadRead(threadID, readerID string) error {
	return s.DB.Model(&models.Message{}).
		Where("thread_id = ? AND sender_id <> ? AND is_read = ?", threadID, readerID, false).
		UpdateColumn("is_read", true).Error
}

// ListThreadsForUser returns the caller's inbox: each thread with its last
// message and unread count, most recent first.
func (s *Service) ListThreadsForUser(userID string) ([]models.ThreadSummary, error) {
	var threads []models.Thread
	err := s.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at desc").Find(&threads).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ThreadSummary, 0, len(threads))
	for _, t := range threads {
		sum := models.ThreadSummary{Thread: t}

		var last models.Message
		err := s.DB.Where("thread_id = ?", t.ID).
			Order("created_at desc").First(&last).Error
		if err == nil {
			sum.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var unread int64
		err = s.DB.Model(&models.Message{}).
			Where("thread_id = ? AND sender_id <> ? AND is_read = ?", t.ID, userID, false).
			Count(&unread).Error
		if err != nil {
			return nil, err
		}
		sum.UnreadCount = int(unread)

		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// ListAllThreads returns every thread, newest activity first. Admin-only
// read path.
func (s *Service) ListAllThreads() ([]models.Thread, error) {
	var threads []models.Thread
	if err := s.DB.Order("last_message_at desc").Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}
