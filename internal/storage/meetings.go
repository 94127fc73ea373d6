package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"obnavi/backend/internal/models"
)

// GetBookingByThreadID loads the one booking for a thread. Returns
// (nil, nil) when no booking exists yet.
func (s *Service) GetBookingByThreadID(threadID string) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.Where("thread_id = ?", threadID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBookingIfAbsent inserts the booking unless one already exists for
// the thread; the unique index on thread_id arbitrates concurrent creates
// and the loser falls through to the existing row.
func (s *Service) CreateBookingIfAbsent(b *models.Booking) (*models.Booking, error) {
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "thread_id"}},
		DoNothing: true,
	}).Create(b)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return b, nil
	}
	return s.GetBookingByThreadID(b.ThreadID)
}

// SaveBooking persists all fields of an existing booking.
func (s *Service) SaveBooking(b *models.Booking) error {
	return s.DB.Save(b).Error
}
