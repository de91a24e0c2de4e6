// Package api assembles the HTTP application.
package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	config "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/api/handlers"
	"github.com/maheshrc27/socialflow/internal/api/middleware"
	"github.com/maheshrc27/socialflow/internal/backend"
	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/service"
)

type Services struct {
	Posts     service.PostService
	Content   service.ContentService
	Campaigns service.CampaignService
	Media     service.MediaService
	Dashboard service.DashboardService
	Blobs     backend.BlobSource
	Bulk      bulk.Policy
}

// Options tweak the app for tests.
type Options struct {
	DisableLogger bool
}

func NewApp(cfg config.Config, s Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	if !opts.DisableLogger {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return cfg.FrontendURL == "" || origin == cfg.FrontendURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	media := handlers.NewMediaHandler(s.Media, s.Blobs)
	app.Get("/media/blob/:ref", media.ServeBlob)

	authMiddleware := middleware.NewAuthMiddleware(cfg)
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	dashboard := handlers.NewDashboardHandler(s.Dashboard)
	api.Get("/dashboard", dashboard.GetDashboard)

	post := handlers.NewPostHandler(s.Posts, s.Content, s.Bulk)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts/export", post.ExportPosts)
	api.Post("/posts/import", post.ImportPosts)
	api.Post("/posts/generate", post.GeneratePosts)
	api.Post("/posts/bulk", post.BulkCreate)
	api.Post("/posts/bulk/status", post.BulkStatus)
	api.Post("/posts/bulk/delete", post.BulkRemove)
	api.Put("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.RemovePost)

	campaign := handlers.NewCampaignHandler(s.Campaigns)
	api.Get("/campaigns", campaign.ListCampaigns)
	api.Post("/campaigns", campaign.CreateCampaign)
	api.Put("/campaigns/:id", campaign.UpdateCampaign)
	api.Delete("/campaigns/:id", campaign.RemoveCampaign)

	api.Get("/studios", campaign.ListStudios)
	api.Post("/studios", campaign.CreateStudio)
	api.Put("/studios/:id", campaign.UpdateStudio)
	api.Delete("/studios/:id", campaign.RemoveStudio)

	api.Get("/media", media.ListMedia)
	api.Post("/media", media.UploadMedia)
	api.Delete("/media/:id", media.RemoveMedia)
	api.Post("/media/:id/move", media.MoveMedia)

	api.Get("/folders", media.ListFolders)
	api.Post("/folders", media.CreateFolder)
	api.Get("/folders/:id", media.BrowseFolder)
	api.Put("/folders/:id", media.RenameFolder)
	api.Delete("/folders/:id", media.RemoveFolder)
	api.Post("/folders/:id/move", media.MoveFolder)
	api.Get("/folders/:id/breadcrumbs", media.Breadcrumbs)
	api.Get("/folders/:id/stats", media.FolderStats)

	advice := handlers.NewAdviceHandler(s.Content)
	api.Post("/advice", advice.GetAdvice)
	api.Post("/advice/campaigns", advice.CampaignIdeas)

	return app
}
