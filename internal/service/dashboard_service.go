package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
	"golang.org/x/sync/errgroup"
)

// Dashboard is everything the calendar view loads on start.
type Dashboard struct {
	Mode      store.Mode           `json:"mode"`
	Posts     []models.Post        `json:"posts"`
	Campaigns []models.Campaign    `json:"campaigns"`
	Media     []models.MediaItem   `json:"media"`
	Folders   []models.MediaFolder `json:"folders"`
	Studios   []models.StudioLink  `json:"studios"`
}

type DashboardService interface {
	Load(ctx context.Context) (Dashboard, error)
}

type dashboardService struct {
	stores *store.Stores
}

func NewDashboardService(stores *store.Stores) DashboardService {
	return &dashboardService{stores: stores}
}

// Load reads all collections concurrently. The first failure cancels the
// remaining reads.
func (s *dashboardService) Load(ctx context.Context) (Dashboard, error) {
	d := Dashboard{Mode: s.stores.Mode}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Posts, err = load(ctx, "posts", s.stores.Posts)
		return
	})
	g.Go(func() (err error) {
		d.Campaigns, err = load(ctx, "campaigns", s.stores.Campaigns)
		return
	})
	g.Go(func() (err error) {
		d.Media, err = load[models.MediaItem](ctx, "media", s.stores.Media)
		return
	})
	g.Go(func() (err error) {
		d.Folders, err = load(ctx, "folders", s.stores.Folders)
		return
	})
	g.Go(func() (err error) {
		d.Studios, err = load(ctx, "studios", s.stores.Studios)
		return
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func load[E any](ctx context.Context, name string, s store.EntityStore[E]) ([]E, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if list == nil {
		list = []E{}
	}
	return list, nil
}
