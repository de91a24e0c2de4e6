package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

// Manager applies hierarchy changes through the persistence stores. It keeps
// no state of its own: callers pass the snapshot the change is checked
// against.
type Manager struct {
	items   store.EntityStore[models.MediaItem]
	folders store.EntityStore[models.MediaFolder]
	now     func() time.Time
}

func NewManager(items store.EntityStore[models.MediaItem], folders store.EntityStore[models.MediaFolder]) *Manager {
	return &Manager{items: items, folders: folders, now: time.Now}
}

// DeleteResult lists the records that were reparented by a folder delete.
type DeleteResult struct {
	MovedItems   []models.MediaItem   `json:"movedItems"`
	MovedFolders []models.MediaFolder `json:"movedFolders"`
}

// MoveItem files item under target (nil = root). Moving to the current folder
// is a no-op.
func (m *Manager) MoveItem(ctx context.Context, item models.MediaItem, target *string) (models.MediaItem, error) {
	if item.InFolder(target) {
		return item, nil
	}
	item.FolderID = copyRef(target)
	updated, err := m.items.Update(ctx, item)
	if err != nil {
		return item, fmt.Errorf("move media item %s: %w", item.ID, err)
	}
	return updated, nil
}

func (m *Manager) CreateFolder(ctx context.Context, tree *Tree, name string, parentID *string) (models.MediaFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MediaFolder{}, ErrInvalidName
	}
	if err := tree.ValidateParent("", parentID); err != nil {
		return models.MediaFolder{}, err
	}

	folder := models.MediaFolder{
		Name:     name,
		ParentID: copyRef(parentID),
		Date:     m.now().UTC(),
	}
	created, err := m.folders.Create(ctx, folder)
	if err != nil {
		return models.MediaFolder{}, fmt.Errorf("create folder: %w", err)
	}
	return created, nil
}

func (m *Manager) RenameFolder(ctx context.Context, tree *Tree, id, name string) (models.MediaFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MediaFolder{}, ErrInvalidName
	}
	folder, ok := tree.Folder(id)
	if !ok {
		return models.MediaFolder{}, fmt.Errorf("%q: %w", id, ErrFolderNotFound)
	}
	folder.Name = name
	return m.updateFolder(ctx, folder)
}

// MoveFolder reparents a folder, rejecting moves that would create a cycle.
func (m *Manager) MoveFolder(ctx context.Context, tree *Tree, id string, parentID *string) (models.MediaFolder, error) {
	folder, ok := tree.Folder(id)
	if !ok {
		return models.MediaFolder{}, fmt.Errorf("%q: %w", id, ErrFolderNotFound)
	}
	if models.SameFolder(folder.ParentID, parentID) {
		return folder, nil
	}
	if err := tree.ValidateParent(id, parentID); err != nil {
		return models.MediaFolder{}, err
	}
	folder.ParentID = copyRef(parentID)
	return m.updateFolder(ctx, folder)
}

// DeleteFolder moves the folder's items to the root and its child folders to
// the folder's own parent, then deletes the folder record. The record is
// only deleted once every child has been moved.
func (m *Manager) DeleteFolder(ctx context.Context, tree *Tree, id string) (DeleteResult, error) {
	var result DeleteResult
	folder, ok := tree.Folder(id)
	if !ok {
		return result, fmt.Errorf("%q: %w", id, ErrFolderNotFound)
	}

	for _, item := range tree.ChildItems(&id) {
		moved, err := m.MoveItem(ctx, item, nil)
		if err != nil {
			return result, fmt.Errorf("delete folder %s: %w", id, err)
		}
		result.MovedItems = append(result.MovedItems, moved)
	}

	for _, child := range tree.ChildFolders(&id) {
		child.ParentID = copyRef(folder.ParentID)
		moved, err := m.updateFolder(ctx, child)
		if err != nil {
			return result, fmt.Errorf("delete folder %s: %w", id, err)
		}
		result.MovedFolders = append(result.MovedFolders, moved)
	}

	if err := m.folders.Delete(ctx, id); err != nil {
		return result, fmt.Errorf("delete folder %s: %w", id, err)
	}

	slog.Info("folder deleted", "id", id,
		"moved_items", len(result.MovedItems), "moved_folders", len(result.MovedFolders))
	return result, nil
}

func (m *Manager) updateFolder(ctx context.Context, folder models.MediaFolder) (models.MediaFolder, error) {
	updated, err := m.folders.Update(ctx, folder)
	if err != nil {
		return folder, fmt.Errorf("update folder %s: %w", folder.ID, err)
	}
	return updated, nil
}

func copyRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := *ref
	return &v
}
