package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/socialflow/internal/api"
	job "github.com/maheshrc27/socialflow/internal/jobs"
	"github.com/maheshrc27/socialflow/internal/queue"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, ctx)
		},
	}
}

func serve(cmd *cobra.Command, ctx *commandContext) error {
	cfg := ctx.cfg

	var (
		client    *asynq.Client
		scheduler service.PublishScheduler
		redisConn asynq.RedisClientOpt
	)
	if cfg.RemoteEnabled() && cfg.RedisURI != "" {
		redisConn = asynq.RedisClientOpt{Addr: cfg.RedisURI}
		client = asynq.NewClient(redisConn)
		defer client.Close()
		scheduler = queue.NewScheduler(client)
	}

	a, err := ctx.open(cmd.Context(), scheduler)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer a.Close()

	app := api.NewApp(*cfg, api.Services{
		Posts:     a.posts,
		Content:   a.content,
		Campaigns: a.campaigns,
		Media:     a.media,
		Dashboard: a.dashboard,
		Blobs:     a.backend.Blobs,
		Bulk:      a.policy,
	}, api.Options{})

	if client != nil {
		queueW := queue.NewQueue(a.posts)
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})
		defer server.Shutdown()

		go func() {
			mux := asynq.NewServeMux()
			mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

			log.Println("Starting the Asynq server...")
			if err := server.Run(mux); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	} else if a.backend.Mode == store.ModeLocal {
		publishJob := job.NewPublishDueJob(a.posts)

		c := cron.New()
		if err := c.AddFunc(job.Schedule, publishJob.PublishDuePosts); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
	} else {
		log.Println("REDIS_URI not set, scheduled posts will not be published automatically")
	}

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s (%s mode)", cfg.ListenAddr, a.backend.Mode)

	gracefulShutdown(app)
	return nil
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	log.Println("Server shutdown complete.")
}
