package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"obnavi/backend/internal/alert"
	"obnavi/backend/internal/api/handler"
	"obnavi/backend/internal/billing"
	"obnavi/backend/internal/compliance"
	"obnavi/backend/internal/config"
	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/meeting"
	"obnavi/backend/internal/messaging"
	"obnavi/backend/internal/models"
	"obnavi/backend/internal/moderation"
	"obnavi/backend/internal/notification"
	"obnavi/backend/internal/objectstore"
	"obnavi/backend/internal/realtime"
	"obnavi/backend/internal/storage"
	"obnavi/backend/internal/translation"
)

func setupDependencies(cfg *config.AppConfig) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.OBOGProfile{},
		&models.CompanyProfile{},
		&models.Thread{},
		&models.Message{},
		&models.Booking{},
		&models.Charge{},
		&models.Report{},
		&models.Notification{},
	)
	if err != nil {
		logger.Log.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Log.Info("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg)
	logger.Log.Info("Starting OBNavi backend...")

	db, rdb := setupDependencies(cfg)
	store := storage.NewStorageService(db, rdb)

	dispatcher := notification.NewDispatcher(store, nil)

	alerter, err := alert.NewTelegramAlerter(cfg.TelegramToken, cfg.AdminTelegramID)
	if err != nil {
		logger.Log.Fatalf("Failed to start ops alert bot: %v", err)
	}
	if alerter.Enabled() {
		logger.Log.Info("Ops alert bot enabled")
	}

	var translator translation.Translator = translation.Noop{}
	if cfg.TranslationAPIURL != "" {
		translator = translation.NewHTTPTranslator(cfg.TranslationAPIURL, cfg.TranslationAPIKey)
	}

	provider := billing.NewStripeProvider(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	uploader := objectstore.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket)

	messagingSvc := messaging.NewService(store, translator, provider, dispatcher)
	meetingSvc := meeting.NewService(store, dispatcher)
	moderationSvc := moderation.NewService(store, dispatcher, alerter)
	complianceSvc := compliance.NewService(store, dispatcher)

	hub := realtime.NewHub(store)
	go hub.Run()

	scheduler, err := notification.NewScheduler(dispatcher, cfg.MorningFlushCron, cfg.WeeklyFlushCron)
	if err != nil {
		logger.Log.Fatalf("Failed to set up email scheduler: %v", err)
	}
	scheduler.Start()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	h := handler.NewHandler(store, messagingSvc, meetingSvc, moderationSvc, complianceSvc,
		provider, uploader, hub, cfg.JWTSecret)
	handler.RegisterRoutes(r, h)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Log.Infof("Listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Shutdown error: %v", err)
	}
}
