package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/controllers"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/internlink/internlink/internal/pkg/websocket"
)

// Controllers bundles every HTTP controller wired by the router
type Controllers struct {
	Auth        *controllers.AuthController
	Session     *controllers.SessionController
	Profile     *controllers.ProfileController
	Job         *controllers.JobController
	Application *controllers.ApplicationController
	Message     *controllers.MessageController
	Review      *controllers.ReviewController
	Admin       *controllers.AdminController
	Live        *controllers.LiveController
	Feed        *websocket.Handler
}

// SetupRouter configures all application routes. Without a configured
// backend the auth surface is served by the session controller over the
// mock identity directory, and every data route answers 503 through the
// backend guard.
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	uploadDir string,
	backendConfigured bool,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes, throttled separately from the API ---
	auth := v1.Group("/auth")
	auth.Use(rateLimiter.Limit("auth"))
	if backendConfigured {
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh-token", ctrl.Auth.RefreshToken)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
	} else {
		// Mock sessions carry no tokens, so /auth/me lives here instead
		// of behind the JWT middleware
		auth.POST("/register", ctrl.Session.SignUp)
		auth.POST("/login", ctrl.Session.SignIn)
		auth.POST("/logout", ctrl.Session.SignOut)
		auth.POST("/forgot-password", ctrl.Session.ForgotPassword)
		auth.GET("/me", ctrl.Session.Me)
		auth.PUT("/profile", ctrl.Session.UpdateProfile)
	}

	backendRequired := middleware.BackendRequired(backendConfigured)

	// --- Public browsing ---
	// Listings are readable without an account so the landing page works
	// for signed-out visitors. The live view works in both modes; the
	// database-backed browse needs a configured backend.
	v1.GET("/jobs/live", ctrl.Live.Listings)
	v1.GET("/jobs", backendRequired, ctrl.Job.Browse)
	v1.GET("/jobs/mine", backendRequired, authMiddleware.JWTAuth(), ctrl.Job.GetMine)
	v1.GET("/jobs/:id", backendRequired, ctrl.Job.GetByID)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(backendRequired, authMiddleware.JWTAuth())
	{
		if backendConfigured {
			authenticated.GET("/auth/me", ctrl.Auth.Me)
		}

		// Profiles
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/intern/me", ctrl.Profile.GetMyInternProfile)
			profiles.PUT("/intern/me", ctrl.Profile.UpdateInternProfile)
			profiles.GET("/intern/:userId", ctrl.Profile.GetInternProfile)
			profiles.POST("/intern/resume", authMiddleware.RoleRequired(string(models.RoleIntern)), ctrl.Profile.UploadResume)
			profiles.GET("/employer/me", ctrl.Profile.GetMyEmployerProfile)
			profiles.PUT("/employer/me", ctrl.Profile.UpdateEmployerProfile)
			profiles.GET("/employer/:userId", ctrl.Profile.GetEmployerProfile)
			profiles.POST("/employer/logo", authMiddleware.RoleRequired(string(models.RoleEmployer)), ctrl.Profile.UploadLogo)
			profiles.PUT("/account", ctrl.Profile.UpdateAccount)
		}

		// Listing management (employer only)
		jobs := authenticated.Group("/jobs")
		{
			jobsEmployer := jobs.Group("")
			jobsEmployer.Use(authMiddleware.RoleRequired(string(models.RoleEmployer)))
			{
				jobsEmployer.POST("", ctrl.Job.Create)
				jobsEmployer.PUT("/:id", ctrl.Job.Update)
				jobsEmployer.DELETE("/:id", ctrl.Job.Delete)
				jobsEmployer.GET("/:id/applications", ctrl.Application.GetForJob)
			}
		}

		// Applications
		applications := authenticated.Group("/applications")
		{
			applications.POST("", authMiddleware.RoleRequired(string(models.RoleIntern)), ctrl.Application.Apply)
			applications.GET("/mine", ctrl.Application.GetMine)
			applications.PUT("/:id/status", ctrl.Application.UpdateStatus)
			applications.POST("/:id/withdraw", authMiddleware.RoleRequired(string(models.RoleIntern)), ctrl.Application.Withdraw)
		}

		// Messages
		messages := authenticated.Group("/messages")
		{
			messages.POST("", ctrl.Message.Send)
			messages.GET("", ctrl.Message.Inbox)
			messages.GET("/conversations/:userId", ctrl.Message.Conversation)
			messages.POST("/:id/read", ctrl.Message.MarkRead)
			messages.GET("/unread-count", ctrl.Message.UnreadCount)
			messages.GET("/demo", ctrl.Message.DemoConversations)
		}

		// Reviews
		reviews := authenticated.Group("/reviews")
		{
			reviews.POST("", ctrl.Review.Create)
			reviews.GET("/user/:userId", ctrl.Review.GetForUser)
			reviews.GET("/by/:userId", ctrl.Review.GetByUser)
		}

		// Reports can be filed by anyone signed in
		authenticated.POST("/reports", ctrl.Admin.CreateReport)

		// Live change feed and the bounded notification window
		authenticated.GET("/feed/ws", ctrl.Feed.HandleConnection)
		authenticated.GET("/notifications", ctrl.Live.Notifications)

		// Admin console. The role gate is a fast pre-filter; every admin
		// service call re-checks the admin_users record.
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/access", ctrl.Admin.CheckAccess)
			admin.GET("/approvals", ctrl.Admin.GetPendingApprovals)
			admin.POST("/approvals/:id/approve", ctrl.Admin.ApproveOrganization)
			admin.POST("/approvals/:id/reject", ctrl.Admin.RejectOrganization)
			admin.POST("/users/:id/ban", ctrl.Admin.BanUser)
			admin.POST("/users/:id/unban", ctrl.Admin.UnbanUser)
			admin.DELETE("/users/:id", ctrl.Admin.DeleteUser)
			admin.POST("/jobs/:id/moderate", ctrl.Admin.ModerateJob)
			admin.DELETE("/jobs/:id", ctrl.Admin.DeleteJob)
			admin.GET("/reports", ctrl.Admin.GetReports)
			admin.PUT("/reports/:id", ctrl.Admin.HandleReport)
			admin.GET("/metrics", ctrl.Admin.GetMetrics)
			admin.GET("/trends", ctrl.Admin.GetTrends)
			admin.GET("/audit-logs", ctrl.Admin.GetAuditLogs)
		}
	}

	// Uploaded files (resumes, logos, avatars)
	router.Static("/uploads", uploadDir)

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Service healthy"))
	})
}
