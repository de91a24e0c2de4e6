package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/media"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

// FolderView is a folder listing with its path from the root.
type FolderView struct {
	Folder      *models.MediaFolder  `json:"folder"`
	Breadcrumbs []models.MediaFolder `json:"breadcrumbs"`
	Folders     []models.MediaFolder `json:"folders"`
	Items       []models.MediaItem   `json:"items"`
	Stats       media.Stats          `json:"stats"`
}

type MediaService interface {
	ListItems(ctx context.Context) ([]models.MediaItem, error)
	ListFolders(ctx context.Context) ([]models.MediaFolder, error)
	Browse(ctx context.Context, folderID *string) (FolderView, error)
	Upload(ctx context.Context, uploads []models.Upload, folderID *string) (bulk.Result[models.MediaItem], error)
	RemoveItem(ctx context.Context, id string) error
	MoveItem(ctx context.Context, id string, folderID *string) (models.MediaItem, error)
	CreateFolder(ctx context.Context, name string, parentID *string) (models.MediaFolder, error)
	RenameFolder(ctx context.Context, id, name string) (models.MediaFolder, error)
	MoveFolder(ctx context.Context, id string, parentID *string) (models.MediaFolder, error)
	RemoveFolder(ctx context.Context, id string) (media.DeleteResult, error)
}

type mediaService struct {
	items   store.MediaStore
	folders store.EntityStore[models.MediaFolder]
	manager *media.Manager
	policy  bulk.Policy
}

func NewMediaService(items store.MediaStore, folders store.EntityStore[models.MediaFolder], policy bulk.Policy) MediaService {
	return &mediaService{
		items:   items,
		folders: folders,
		manager: media.NewManager(items, folders),
		policy:  policy,
	}
}

func (s *mediaService) ListItems(ctx context.Context) ([]models.MediaItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return items, nil
}

func (s *mediaService) ListFolders(ctx context.Context) ([]models.MediaFolder, error) {
	folders, err := s.folders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

func (s *mediaService) Browse(ctx context.Context, folderID *string) (FolderView, error) {
	tree, err := s.snapshot(ctx)
	if err != nil {
		return FolderView{}, err
	}

	view := FolderView{
		Breadcrumbs: []models.MediaFolder{},
		Folders:     tree.ChildFolders(folderID),
		Items:       tree.ChildItems(folderID),
		Stats:       tree.Stats(folderID),
	}
	if folderID == nil {
		return view, nil
	}

	folder, ok := tree.Folder(*folderID)
	if !ok {
		return FolderView{}, fmt.Errorf("%q: %w", *folderID, media.ErrFolderNotFound)
	}
	crumbs, err := tree.Breadcrumbs(*folderID)
	if err != nil {
		return FolderView{}, err
	}
	view.Folder = &folder
	view.Breadcrumbs = crumbs
	return view, nil
}

// Upload stores each file independently. A missing target folder fails the
// whole request before anything is stored.
func (s *mediaService) Upload(ctx context.Context, uploads []models.Upload, folderID *string) (bulk.Result[models.MediaItem], error) {
	if folderID != nil {
		tree, err := s.snapshot(ctx)
		if err != nil {
			return bulk.Result[models.MediaItem]{}, err
		}
		if _, ok := tree.Folder(*folderID); !ok {
			return bulk.Result[models.MediaItem]{}, fmt.Errorf("%q: %w", *folderID, media.ErrFolderNotFound)
		}
	}

	return bulk.Run(ctx, "upload media", uploads, func(ctx context.Context, up models.Upload) (models.MediaItem, error) {
		return s.items.Upload(ctx, up, folderID)
	}, s.policy), nil
}

func (s *mediaService) RemoveItem(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove media item: %w", err)
	}
	return nil
}

func (s *mediaService) MoveItem(ctx context.Context, id string, folderID *string) (models.MediaItem, error) {
	tree, err := s.snapshot(ctx)
	if err != nil {
		return models.MediaItem{}, err
	}
	if folderID != nil {
		if _, ok := tree.Folder(*folderID); !ok {
			return models.MediaItem{}, fmt.Errorf("%q: %w", *folderID, media.ErrFolderNotFound)
		}
	}

	item, ok := tree.Item(id)
	if !ok {
		return models.MediaItem{}, store.NotFound("media item", id)
	}
	return s.manager.MoveItem(ctx, item, folderID)
}

func (s *mediaService) CreateFolder(ctx context.Context, name string, parentID *string) (models.MediaFolder, error) {
	tree, err := s.snapshot(ctx)
	if err != nil {
		return models.MediaFolder{}, err
	}
	return s.manager.CreateFolder(ctx, tree, name, parentID)
}

func (s *mediaService) RenameFolder(ctx context.Context, id, name string) (models.MediaFolder, error) {
	tree, err := s.snapshot(ctx)
	if err != nil {
		return models.MediaFolder{}, err
	}
	return s.manager.RenameFolder(ctx, tree, id, name)
}

func (s *mediaService) MoveFolder(ctx context.Context, id string, parentID *string) (models.MediaFolder, error) {
	tree, err := s.snapshot(ctx)
	if err != nil {
		return models.MediaFolder{}, err
	}
	return s.manager.MoveFolder(ctx, tree, id, parentID)
}

func (s *mediaService) RemoveFolder(ctx context.Context, id string) (media.DeleteResult, error) {
	tree, err := s.snapshot(ctx)
	if err != nil {
		return media.DeleteResult{}, err
	}
	return s.manager.DeleteFolder(ctx, tree, id)
}

func (s *mediaService) snapshot(ctx context.Context) (*media.Tree, error) {
	folders, err := s.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return media.NewTree(folders, items), nil
}
