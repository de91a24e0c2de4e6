package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

// CampaignService manages campaigns and design studio bookmarks, the two
// plain CRUD collections.
type CampaignService interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error)
	UpdateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error)
	RemoveCampaign(ctx context.Context, id string) error

	ListStudios(ctx context.Context) ([]models.StudioLink, error)
	CreateStudio(ctx context.Context, s models.StudioLink) (models.StudioLink, error)
	UpdateStudio(ctx context.Context, s models.StudioLink) (models.StudioLink, error)
	RemoveStudio(ctx context.Context, id string) error
}

type campaignService struct {
	campaigns store.EntityStore[models.Campaign]
	studios   store.EntityStore[models.StudioLink]
}

func NewCampaignService(campaigns store.EntityStore[models.Campaign], studios store.EntityStore[models.StudioLink]) CampaignService {
	return &campaignService{campaigns: campaigns, studios: studios}
}

func (s *campaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *campaignService) CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	c.ID = ""
	created, err := s.campaigns.Create(ctx, c)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return created, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	updated, err := s.campaigns.Update(ctx, c)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("update campaign: %w", err)
	}
	return updated, nil
}

func (s *campaignService) RemoveCampaign(ctx context.Context, id string) error {
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove campaign: %w", err)
	}
	return nil
}

func (s *campaignService) ListStudios(ctx context.Context) ([]models.StudioLink, error) {
	studios, err := s.studios.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list studios: %w", err)
	}
	return studios, nil
}

func (s *campaignService) CreateStudio(ctx context.Context, st models.StudioLink) (models.StudioLink, error) {
	st.ID = ""
	created, err := s.studios.Create(ctx, st)
	if err != nil {
		return models.StudioLink{}, fmt.Errorf("create studio: %w", err)
	}
	return created, nil
}

func (s *campaignService) UpdateStudio(ctx context.Context, st models.StudioLink) (models.StudioLink, error) {
	updated, err := s.studios.Update(ctx, st)
	if err != nil {
		return models.StudioLink{}, fmt.Errorf("update studio: %w", err)
	}
	return updated, nil
}

func (s *campaignService) RemoveStudio(ctx context.Context, id string) error {
	if err := s.studios.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove studio: %w", err)
	}
	return nil
}
