package main

import (
	"github.com/sweeply/fieldops/internal/config"
	"github.com/sweeply/fieldops/internal/handlers"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/internal/services"
	"github.com/sweeply/fieldops/internal/utils"
	"github.com/sweeply/fieldops/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	taskQueue       services.TaskQueue
	worker          *services.Worker
	reminderService *services.ReminderService
	authHandler     *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	notificationService := services.NewNotificationService(models.GetDB())
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Deliver)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.Deliver)
			worker.Start()
		}
	}

	// Start the daily schedule reminder
	reminderService := services.NewReminderService(models.GetDB(), taskQueue)
	if err := reminderService.Start(&cfg.Reminder); err != nil {
		logger.Warn().Err(err).Msg("Failed to start reminder scheduler")
	}

	// Create default admin account
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin account")
	}

	return &appServices{
		taskQueue:       taskQueue,
		worker:          worker,
		reminderService: reminderService,
		authHandler:     authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.Stop()
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
