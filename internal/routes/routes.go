package routes

import (
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/config"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/controllers"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/middleware"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and controllers and registers
// all application routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	emailSender := services.NewEmailSender(cfg)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, emailSender)
	selector := services.NewAssignmentSelector(userRepo, reportRepo)
	reportService := services.NewReportService(reportRepo, userRepo, selector, notificationService)
	commentService := services.NewCommentService(commentRepo, reportRepo)
	messageService := services.NewMessageService(messageRepo, reportRepo, userRepo)

	// Controllers
	authController := controllers.NewAuthController(userRepo)
	userController := controllers.NewUserController(userRepo)
	reportController := controllers.NewReportController(reportService, commentService, messageService)
	notificationController := controllers.NewNotificationController(notificationService)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
		}

		// Report creation accepts anonymous submissions, so auth is
		// optional here and enforced per-request by the controller.
		api.POST("/reports", middleware.OptionalAuthMiddleware(), reportController.CreateReport)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Users
			users := protected.Group("/users")
			{
				users.GET("/me", userController.GetCurrentUser)
				users.PUT("/me/preferences", userController.UpdatePreferences)
				users.GET("", userController.GetUsers)
				users.PUT("/:id/roles", userController.UpdateRoles)
			}

			// Reports
			reports := protected.Group("/reports")
			{
				reports.GET("", reportController.GetReports)
				reports.GET("/:id", reportController.GetReport)
				reports.POST("/:id/review", reportController.ReviewReport)
				reports.POST("/:id/assign-external", reportController.AssignExternal)
				reports.PATCH("/:id/status", reportController.UpdateStatus)
				reports.GET("/:id/comments", reportController.GetComments)
				reports.POST("/:id/comments", reportController.AddComment)
				reports.GET("/:id/messages", reportController.GetMessages)
				reports.POST("/:id/messages", reportController.SendMessage)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationController.GetNotifications)
				notifications.GET("/unread", notificationController.GetUnreadNotifications)
				notifications.PATCH("/:id/read", notificationController.MarkRead)
				notifications.PATCH("/read-all", notificationController.MarkAllRead)
				notifications.DELETE("/:id", notificationController.DeleteNotification)
			}
		}
	}
}
