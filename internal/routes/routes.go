package routes

import (
	"time"

	"github.com/cropcareai/backend/internal/config"
	"github.com/cropcareai/backend/internal/handlers"
	"github.com/cropcareai/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	communityHandler *handlers.CommunityHandler,
	helpHandler *handlers.HelpHandler,
	exploreHandler *handlers.ExploreHandler,
	predictHandler *handlers.PredictHandler,
	moderationHandler *handlers.ModerationHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "CropCareAI backend is running"})
	})
	app.Get("/health", healthHandler.Health)

	// Auth routes are public with a stricter rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup/email", authHandler.SignupEmail)
	auth.Post("/signup/phone", authHandler.SignupPhone)
	auth.Post("/login", authHandler.Login)
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Community reads are public, mutations require a token
	community := app.Group("/community")
	community.Get("/posts", communityHandler.ListPosts)
	community.Get("/posts/:id", communityHandler.GetPost)
	community.Get("/posts/:id/comments", communityHandler.ListComments)
	community.Post("/posts", middleware.JWTProtected(cfg), communityHandler.CreatePost)
	community.Delete("/posts/:id", middleware.JWTProtected(cfg), communityHandler.DeletePost)
	community.Post("/posts/:id/comments", middleware.JWTProtected(cfg), communityHandler.AddComment)
	community.Post("/posts/:id/like", middleware.JWTProtected(cfg), communityHandler.LikePost)
	community.Post("/comments/:id/like", middleware.JWTProtected(cfg), communityHandler.LikeComment)

	// Reports can come from anonymous users too
	community.Post("/reports", middleware.JWTOptional(cfg), moderationHandler.CreateReport)

	// Help
	help := app.Group("/help")
	help.Get("/quick-help", helpHandler.QuickHelp)
	help.Get("/faqs", helpHandler.ListFAQs)
	help.Post("/faqs", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), helpHandler.CreateFAQ)
	help.Post("/contact", helpHandler.ContactSupport)

	// Explore chat
	app.Post("/explore/chat", exploreHandler.Chat)

	// Prediction
	predict := app.Group("/predict")
	predict.Post("/predict", predictHandler.Predict)
	predict.Get("/health", healthHandler.Health)

	// Admin moderation panel (JWT + admin required)
	admin := app.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Put("/reports/:id", moderationHandler.ResolveReport)
}
