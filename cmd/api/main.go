package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"clubhub/internal/config"
	"clubhub/internal/domain"
	"clubhub/internal/handler"
	"clubhub/internal/middleware"
	"clubhub/internal/repository"
	"clubhub/internal/service"
	"clubhub/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (gallery upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Add middleware to extract real IP (for Cloudflare) and User-Agent
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Anonymous visitors can browse public content; a valid token upgrades
	// what they see.
	browse := v1.Group("", middleware.AuthOptional(authService))

	announcements := browse.Group("/announcements")
	announcements.Get("/", h.Announcement.List)
	announcements.Get("/:announcementId", h.Announcement.Get)
	announcements.Get("/:announcementId/comments", h.Announcement.ListComments)
	announcements.Get("/:announcementId/likes", h.Announcement.ListLikes)

	events := browse.Group("/events")
	events.Get("/", h.Event.List)
	events.Get("/:eventId", h.Event.Get)
	events.Get("/:eventId/comments", h.Event.ListComments)
	events.Get("/:eventId/feedback", h.Event.ListFeedback)

	gallery := browse.Group("/gallery")
	gallery.Get("/", h.Gallery.List)
	gallery.Get("/albums", h.Gallery.ListAlbums)
	gallery.Get("/:itemId", h.Gallery.Get)

	v1.Post("/contact", h.Contact.Submit)

	protected := v1.Group("", middleware.AuthRequired(authService))

	members := protected.Group("/members")
	members.Get("/me", h.Member.GetProfile)
	members.Put("/me", h.Member.UpdateProfile)
	members.Get("/", middleware.RequireRole(domain.RoleOfficer), h.Member.List)
	members.Get("/:memberId", middleware.RequireRole(domain.RoleOfficer), h.Member.Get)
	members.Post("/assign-role", middleware.RequireRole(domain.RoleAdmin), h.Member.AssignRole)
	members.Post("/:memberId/approve", middleware.RequireRole(domain.RoleOfficer), h.Member.Approve)
	members.Post("/:memberId/deactivate", middleware.RequireRole(domain.RoleAdmin), h.Member.Deactivate)
	members.Delete("/:memberId", middleware.RequireRole(domain.RoleAdmin), h.Member.Delete)

	announcementsAuth := protected.Group("/announcements")
	announcementsAuth.Post("/", middleware.RequireRole(domain.RoleOfficer), h.Announcement.Create)
	announcementsAuth.Put("/:announcementId", h.Announcement.Update)
	announcementsAuth.Post("/:announcementId/publish", middleware.RequireRole(domain.RoleOfficer), h.Announcement.Publish)
	announcementsAuth.Post("/:announcementId/archive", middleware.RequireRole(domain.RoleOfficer), h.Announcement.Archive)
	announcementsAuth.Delete("/:announcementId", h.Announcement.Delete)
	announcementsAuth.Post("/:announcementId/like", h.Announcement.ToggleLike)
	announcementsAuth.Post("/:announcementId/comments", h.Announcement.AddComment)

	eventsAuth := protected.Group("/events")
	eventsAuth.Post("/", middleware.RequireRole(domain.RoleOfficer), h.Event.Create)
	eventsAuth.Put("/:eventId", h.Event.Update)
	eventsAuth.Post("/:eventId/publish", middleware.RequireRole(domain.RoleOfficer), h.Event.Publish)
	eventsAuth.Post("/:eventId/cancel", middleware.RequireRole(domain.RoleOfficer), h.Event.Cancel)
	eventsAuth.Post("/:eventId/complete", middleware.RequireRole(domain.RoleOfficer), h.Event.Complete)
	eventsAuth.Delete("/:eventId", h.Event.Delete)
	eventsAuth.Post("/:eventId/register", h.Event.Register)
	eventsAuth.Delete("/:eventId/register", h.Event.Unregister)
	eventsAuth.Get("/:eventId/participants", middleware.RequireRole(domain.RoleOfficer), h.Event.ListParticipants)
	eventsAuth.Put("/:eventId/participants/:memberId", middleware.RequireRole(domain.RoleOfficer), h.Event.UpdateParticipation)
	eventsAuth.Post("/:eventId/feedback", h.Event.AddFeedback)
	eventsAuth.Post("/:eventId/like", h.Event.ToggleLike)
	eventsAuth.Post("/:eventId/comments", h.Event.AddComment)

	protected.Delete("/comments/:commentId", h.Comment.Delete)

	donations := protected.Group("/donations")
	donations.Post("/", h.Donation.Create)
	donations.Get("/", h.Donation.List)
	donations.Get("/totals", middleware.RequireRole(domain.RoleOfficer), h.Donation.MonthlyTotals)
	donations.Get("/:donationId", h.Donation.Get)
	donations.Post("/:donationId/review", middleware.RequireRole(domain.RoleAdmin), h.Donation.Review)

	galleryAuth := protected.Group("/gallery")
	galleryAuth.Post("/", middleware.RequireRole(domain.RoleOfficer), h.Gallery.Upload)
	galleryAuth.Delete("/:itemId", h.Gallery.Delete)

	contactAuth := protected.Group("/contact")
	contactAuth.Get("/", middleware.RequireRole(domain.RoleOfficer), h.Contact.List)
	contactAuth.Get("/:messageId", middleware.RequireRole(domain.RoleOfficer), h.Contact.Get)
	contactAuth.Post("/:messageId/respond", middleware.RequireRole(domain.RoleOfficer), h.Contact.Respond)
	contactAuth.Post("/:messageId/close", middleware.RequireRole(domain.RoleOfficer), h.Contact.Close)

	protected.Get("/dashboard/stats", middleware.RequireRole(domain.RoleOfficer), h.Dashboard.GetStats)
}
