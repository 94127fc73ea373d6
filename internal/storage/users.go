package storage

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
)

// GetUserByID loads a user row. Returns (nil, nil) when the user does not
// exist.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads a user row by email. Returns (nil, nil) when absent.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user row.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// SaveUser persists all fields of an existing user.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// DeductCredits performs the conditional decrement as a single statement so
// concurrent sends cannot over-spend. Returns false when the balance guard
// fails, without error.
func (s *Service) DeductCredits(userID string, amount int) (bool, error) {
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND credits >= ?", userID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RefundCredits returns credits after a failed message insert.
func (s *Service) RefundCredits(userID string, amount int) error {
	return s.addCredits(userID, amount)
}

// AddCredits credits a balance (top-up flow).
func (s *Service) AddCredits(userID string, amount int) error {
	return s.addCredits(userID, amount)
}

func (s *Service) addCredits(userID string, amount int) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

// AddStrike increments the strike counter and flips is_banned in the same
// statement when the maximum is reached. Returns the resulting count and ban
// flag.
func (s *Service) AddStrike(userID string) (int, bool, error) {
	err := s.DB.Exec(
		`UPDATE users
		   SET strikes = LEAST(strikes + 1, ?),
		       is_banned = is_banned OR (strikes + 1 >= ?)
		 WHERE id = ?`,
		models.MaxStrikes, models.MaxStrikes, userID).Error
	if err != nil {
		return 0, false, err
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return 0, false, err
	}
	if user == nil {
		return 0, false, gorm.ErrRecordNotFound
	}

	if user.IsBanned {
		s.cacheBan(userID, true)
	}
	return user.Strikes, user.IsBanned, nil
}

// SetBanned flips the ban flag and mirrors it into the Redis cache.
func (s *Service) SetBanned(userID string, banned bool) error {
	err := s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("is_banned", banned).Error
	if err != nil {
		return err
	}
	s.cacheBan(userID, banned)
	return nil
}

// IsUserBanned consults the Redis cache first and falls back to the row.
func (s *Service) IsUserBanned(userID string) (bool, error) {
	if s.Redis != nil {
		status, err := s.Redis.Get(s.Ctx, "ban:"+userID).Result()
		if err == nil {
			return status == "1", nil
		}
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warnf("ban cache read failed for %s: %v", userID, err)
		}
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	s.cacheBan(userID, user.IsBanned)
	return user.IsBanned, nil
}

func (s *Service) cacheBan(userID string, banned bool) {
	if s.Redis == nil {
		return
	}
	val := "0"
	if banned {
		val = "1"
	}
	if err := s.Redis.Set(s.Ctx, "ban:"+userID, val, 0).Err(); err != nil {
		logger.Log.Warnf("ban cache write failed for %s: %v", userID, err)
	}
}

// GetStudentProfile loads a student profile. Returns (nil, nil) when absent.
func (s *Service) GetStudentProfile(userID string) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := s.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveStudentProfile upserts a student profile.
func (s *Service) SaveStudentProfile(p *models.StudentProfile) error {
	return s.DB.Save(p).Error
}

// GetOBOGProfile loads an alumni profile. Returns (nil, nil) when absent.
func (s *Service) GetOBOGProfile(userID string) (*models.OBOGProfile, error) {
	var p models.OBOGProfile
	err := s.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveOBOGProfile upserts an alumni profile.
func (s *Service) SaveOBOGProfile(p *models.OBOGProfile) error {
	return s.DB.Save(p).Error
}

// GetCompanyProfile loads a company profile. Returns (nil, nil) when absent.
func (s *Service) GetCompanyProfile(userID string) (*models.CompanyProfile, error) {
	var p models.CompanyProfile
	err := s.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveCompanyProfile upserts a company profile.
func (s *Service) SaveCompanyProfile(p *models.CompanyProfile) error {
	return s.DB.Save(p).Error
}

// ListOBOGProfiles returns all alumni profiles for the listing page.
func (s *Service) ListOBOGProfiles() ([]models.OBOGProfile, error) {
	var profiles []models.OBOGProfile
	if err := s.DB.Order("updated_at desc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListCorporateOBs returns all corporate_ob users for the admin panel.
func (s *Service) ListCorporateOBs() ([]models.User, error) {
	var users []models.User
	err := s.DB.Where("role = ?", models.RoleCorporateOB).
		Order("created_at desc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
