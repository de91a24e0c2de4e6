package main

import (
	"context"
	"fmt"
	"os"

	config "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/advice"
	"github.com/maheshrc27/socialflow/internal/auth"
	"github.com/maheshrc27/socialflow/internal/backend"
	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/spf13/cobra"
)

type commandContext struct {
	cfg    *config.Config
	userID string
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	root := &cobra.Command{
		Use:           "socialflow",
		Short:         "Social media content scheduling backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.cfg = config.LoadConfig()
		},
	}
	root.PersistentFlags().StringVar(&ctx.userID, "user", "", "principal to act as against the remote backend")

	root.AddCommand(newServeCommand(ctx))
	root.AddCommand(newPostsCommand(ctx))

	return root
}

// app is the service graph shared by the server and the offline commands.
type app struct {
	backend   *backend.Backend
	posts     service.PostService
	content   service.ContentService
	campaigns service.CampaignService
	media     service.MediaService
	dashboard service.DashboardService
	policy    bulk.Policy
}

func (c *commandContext) bulkPolicy() bulk.Policy {
	return bulk.Policy{Delay: c.cfg.Bulk.Delay, Retries: c.cfg.Bulk.Retries}
}

// open builds the services on top of the configured backend. scheduler may
// be nil.
func (c *commandContext) open(ctx context.Context, scheduler service.PublishScheduler) (*app, error) {
	b, err := backend.Open(ctx, *c.cfg)
	if err != nil {
		return nil, err
	}

	var generator advice.Generator
	if c.cfg.Gemini.APIKey != "" {
		client, err := advice.NewClient(ctx, c.cfg.Gemini.APIKey, c.cfg.Gemini.Model)
		if err != nil {
			b.Close()
			return nil, err
		}
		generator = client
	}

	policy := c.bulkPolicy()
	generation := policy
	generation.Delay = c.cfg.Bulk.GenerationDelay

	posts := service.NewPostService(b.Posts, b.Campaigns, scheduler, policy)
	return &app{
		backend:   b,
		posts:     posts,
		content:   service.NewContentService(posts, generator, policy, generation),
		campaigns: service.NewCampaignService(b.Campaigns, b.Studios),
		media:     service.NewMediaService(b.Media, b.Folders, policy),
		dashboard: service.NewDashboardService(b.Stores),
		policy:    policy,
	}, nil
}

func (a *app) Close() {
	fmt.Fprint(os.Stdout, "Closing storage... ")
	if err := a.backend.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close storage: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

// principal attaches the --user principal to ctx.
func (c *commandContext) principal(ctx context.Context) context.Context {
	return auth.WithPrincipal(ctx, c.userID)
}
