package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/handlers"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public login route
	loginLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Dashboard (role-scoped payload)
			dashboardHandler := handlers.NewDashboardHandler(models.GetDB())
			protected.GET("/dashboard", dashboardHandler.GetDashboard)

			// Projects (read for all roles, visibility-filtered)
			projectHandler := handlers.NewProjectHandler(models.GetDB(), svc.taskQueue)
			protected.GET("/projects", projectHandler.ListMajors)
			protected.GET("/projects/:id", projectHandler.GetMajor)

			// Schedule
			scheduleHandler := handlers.NewScheduleHandler(models.GetDB())
			protected.GET("/schedule", scheduleHandler.GetSchedule)

			// Chat
			chatHandler := handlers.NewChatHandler(models.GetDB())
			protected.GET("/chats", chatHandler.List)
			protected.GET("/minors/:id/messages", chatHandler.Messages)
			protected.POST("/minors/:id/messages", chatHandler.Send)

			// Notifications
			notificationHandler := handlers.NewNotificationHandler(models.GetDB())
			protected.GET("/notifications", notificationHandler.List)
			protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			protected.POST("/notifications/:id/read", notificationHandler.MarkRead)

			// Applications (masters only)
			participantHandler := handlers.NewParticipantHandler(models.GetDB(), svc.taskQueue)
			master := protected.Group("", middleware.RoleRequired(models.RoleMaster))
			{
				master.POST("/minors/:id/apply", participantHandler.Apply)
				master.GET("/minors/:id/apply-state", participantHandler.ApplyState)
			}

			// Review transitions (clients and admins move minors out of review)
			protected.PATCH("/minors/:id/status", projectHandler.TransitionMinor)

			// Admin only routes
			admin := protected.Group("", middleware.AdminRequired())
			{
				// Projects (write operations)
				admin.POST("/projects", projectHandler.CreateMajor)
				admin.PUT("/projects/:id", projectHandler.UpdateMajor)
				admin.DELETE("/projects/:id", projectHandler.DeleteMajor)
				admin.POST("/projects/:id/minors", projectHandler.CreateMinor)
				admin.PATCH("/projects/:id/status", projectHandler.TransitionMajor)
				admin.PUT("/minors/:id", projectHandler.UpdateMinor)
				admin.DELETE("/minors/:id", projectHandler.DeleteMinor)

				// Application decisions
				admin.POST("/participants/:id/approve", participantHandler.Approve)
				admin.POST("/participants/:id/reject", participantHandler.Reject)

				// Stores
				storeHandler := handlers.NewStoreHandler(models.GetDB())
				admin.GET("/stores", storeHandler.List)
				admin.POST("/stores", storeHandler.Create)
				admin.PATCH("/stores/:id/master", storeHandler.AssignMaster)

				// System Logs
				systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
				admin.GET("/system-logs", systemLogHandler.List)
				admin.GET("/system-logs/modules", systemLogHandler.GetModules)
				admin.POST("/system-logs/cleanup", systemLogHandler.Cleanup)

				// Manual reminder trigger
				reminderHandler := handlers.NewReminderHandler(svc.reminderService)
				admin.POST("/reminders/trigger", reminderHandler.Trigger)
			}
		}
	}
}
