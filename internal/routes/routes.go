package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/talentboard/moderation-backend/internal/config"
	"github.com/talentboard/moderation-backend/internal/handlers"
	"github.com/talentboard/moderation-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	postingHandler *handlers.PostingHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Postings — submission and edits run the moderation engine
	api.Get("/postings/:id", postingHandler.Get)
	api.Post("/postings", middleware.JWTProtected(cfg), postingHandler.Create)
	api.Put("/postings/:id", middleware.JWTProtected(cfg), postingHandler.Update)

	// Report filing gets a stricter limit: 10 req/min per IP
	reports := api.Group("/postings/:id/reports")
	reports.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	reports.Post("/", middleware.JWTProtected(cfg), reportHandler.FileReport)

	// Admin moderation panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/flagged", postingHandler.ListFlagged)
	admin.Get("/moderation/reports", reportHandler.ListReports)
	admin.Put("/moderation/reports/:id", reportHandler.ResolveReport)
}
