package routes

import (
	"cloud-kitchen-api/handlers"
	"cloud-kitchen-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Customer auth: direct and OTP-gated variants
		public.POST("/auth/signup", handlers.Signup)
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/send-otp", handlers.SendOTP)
		public.POST("/auth/complete-signup", handlers.CompleteSignup)
		public.POST("/auth/reset-password", handlers.ResetPassword)
		public.POST("/auth/find-account", handlers.FindAccount)

		// Admin auth
		public.POST("/admin/auth/login", handlers.AdminLogin)
		public.POST("/admin/auth/send-otp", handlers.AdminSendOTP)
		public.POST("/admin/auth/complete-signup", handlers.AdminCompleteSignup)
		public.POST("/admin/auth/reset-password", handlers.AdminResetPassword)
		public.POST("/admin/auth/find-account", handlers.AdminFindAccount)

		// Storefront reads
		public.GET("/menu", handlers.GetMenu)
		public.GET("/kitchen", handlers.GetKitchen)
		public.GET("/stats", handlers.GetStats)
		public.GET("/reviews/recent", handlers.GetRecentReviews)

		// Lifecycle docs
		public.GET("/state-machine", handlers.GetLifecycleInfo)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired())
	{
		customer.POST("/orders", handlers.CreateOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id/invoice", handlers.GetInvoice)

		customer.GET("/reviews", handlers.GetReviews)
		customer.POST("/reviews", handlers.SubmitReview)
		customer.GET("/reviews/:id/comments", handlers.GetReviewComments)
		customer.POST("/reviews/:id/comments", handlers.AddComment)
	}

	// ── Admin console routes ───────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/orders", handlers.AdminListOrders)
		admin.GET("/orders/:id", handlers.AdminGetOrder)
		admin.PATCH("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.PATCH("/order-items/:id/status", handlers.AdminUpdateItemStatus)

		admin.GET("/kitchen", handlers.AdminGetKitchen)
		admin.PATCH("/kitchen", handlers.AdminToggleKitchen)

		admin.GET("/menu", handlers.AdminListMenu)
		admin.POST("/menu", handlers.AdminCreateMenuItem)
		admin.PATCH("/menu/:id", handlers.AdminUpdateMenuItem)
	}

	// ── Owner-only routes ──────────────────────────────────────────
	owner := r.Group("/api/admin")
	owner.Use(middleware.AdminRequired(), middleware.OwnerOnly())
	{
		owner.GET("/analytics", handlers.AdminAnalytics)
		owner.GET("/staff", handlers.AdminListStaff)
		owner.POST("/staff", handlers.AdminCreateStaff)
		owner.PATCH("/staff/:id", handlers.AdminUpdateStaff)
	}
}
