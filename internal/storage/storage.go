package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"obnavi/backend/internal/models"
)

// Storage is the full persistence surface. Domain services depend on the
// narrow slices of it they need; this interface exists for wiring and for
// the ops CLI.
type Storage interface {
	// Users & profiles
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	DeductCredits(userID string, amount int) (bool, error)
	RefundCredits(userID string, amount int) error
	AddCredits(userID string, amount int) error
	AddStrike(userID string) (strikes int, banned bool, err error)
	SetBanned(userID string, banned bool) error
	IsUserBanned(userID string) (bool, error)

	GetStudentProfile(userID string) (*models.StudentProfile, error)
	SaveStudentProfile(p *models.StudentProfile) error
	GetOBOGProfile(userID string) (*models.OBOGProfile, error)
	SaveOBOGProfile(p *models.OBOGProfile) error
	GetCompanyProfile(userID string) (*models.CompanyProfile, error)
	SaveCompanyProfile(p *models.CompanyProfile) error
	ListOBOGProfiles() ([]models.OBOGProfile, error)
	ListCorporateOBs() ([]models.User, error)

	// Threads & messages
	GetThreadByID(id string) (*models.Thread, error)
	ThreadBetween(userA, userB string) (*models.Thread, error)
	FindOrCreateThread(userA, userB string) (*models.Thread, error)
	CreateMessage(msg *models.Message) error
	ListMessages(threadID string) ([]models.Message, error)
	MarkThreadRead(threadID, readerID string) error
	ListThreadsForUser(userID string) ([]models.ThreadSummary, error)
	ListAllThreads() ([]models.Thread, error)

	// Bookings
	GetBookingByThreadID(threadID string) (*models.Booking, error)
	CreateBookingIfAbsent(b *models.Booking) (*models.Booking, error)
	SaveBooking(b *models.Booking) error

	// Charges
	CreateCharge(c *models.Charge) error
	ListChargesForUser(userID string) ([]models.Charge, error)

	// Reports
	CreateReport(r *models.Report) error
	GetReportByID(id string) (*models.Report, error)
	ListReports(status models.ReportStatus) ([]models.Report, error)
	ListReportsByReporter(reporterID string) ([]models.Report, error)
	SaveReport(r *models.Report) error

	// Notifications
	CreateNotification(n *models.Notification) error
	ListNotificationsForUser(userID string, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(id, userID string) error
	MarkAllNotificationsRead(userID string) error

	// Redis-backed queues, guards and pub/sub
	EnqueueEmail(queue string, payload []byte) error
	DrainEmailQueue(queue string) ([][]byte, error)
	ClaimCheckoutSession(sessionID string, ttl time.Duration) (bool, error)
	PublishUserEvent(userID string, payload []byte) error
}

// Service implements Storage over PostgreSQL (gorm) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService constructs the storage service. The Redis client may be
// nil for offline tooling (the admin CLI); Redis-backed methods then degrade
// to the database-only path or no-op.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

var _ Storage = (*Service)(nil)
