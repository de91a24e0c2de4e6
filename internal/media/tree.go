// Package media organizes media items into a folder hierarchy.
package media

import (
	"errors"
	"fmt"

	"github.com/maheshrc27/socialflow/internal/models"
)

var (
	ErrCycleDetected  = errors.New("folder hierarchy contains a cycle")
	ErrFolderNotFound = errors.New("folder not found")
	ErrInvalidParent  = errors.New("invalid parent folder")
	ErrInvalidName    = errors.New("folder name cannot be empty")
)

// Stats counts the direct children of a folder.
type Stats struct {
	Folders int `json:"folders"`
	Files   int `json:"files"`
}

// Tree is an immutable snapshot of the folder forest and the items filed in
// it. Folders are kept in a map keyed by id; children are indexed by parent.
type Tree struct {
	folders  map[string]models.MediaFolder
	children map[string][]string
	roots    []string
	items    []models.MediaItem
}

// NewTree indexes folders and items. Input order is kept for listings.
func NewTree(folders []models.MediaFolder, items []models.MediaItem) *Tree {
	t := &Tree{
		folders:  make(map[string]models.MediaFolder, len(folders)),
		children: make(map[string][]string),
		items:    items,
	}
	for _, f := range folders {
		t.folders[f.ID] = f
		if f.ParentID == nil {
			t.roots = append(t.roots, f.ID)
			continue
		}
		t.children[*f.ParentID] = append(t.children[*f.ParentID], f.ID)
	}
	return t
}

func (t *Tree) Folder(id string) (models.MediaFolder, bool) {
	f, ok := t.folders[id]
	return f, ok
}

// Item finds a media item of the snapshot by id.
func (t *Tree) Item(id string) (models.MediaItem, bool) {
	for _, item := range t.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MediaItem{}, false
}

func (t *Tree) Len() int { return len(t.folders) }

// ChildFolders lists folders whose parent is parentID; nil lists the roots.
func (t *Tree) ChildFolders(parentID *string) []models.MediaFolder {
	ids := t.roots
	if parentID != nil {
		ids = t.children[*parentID]
	}
	result := make([]models.MediaFolder, 0, len(ids))
	for _, id := range ids {
		result = append(result, t.folders[id])
	}
	return result
}

// ChildItems lists items filed directly in folderID; nil lists root items.
func (t *Tree) ChildItems(folderID *string) []models.MediaItem {
	result := []models.MediaItem{}
	for _, item := range t.items {
		if item.InFolder(folderID) {
			result = append(result, item)
		}
	}
	return result
}

// Stats counts direct child folders and items only.
func (t *Tree) Stats(folderID *string) Stats {
	return Stats{
		Folders: len(t.ChildFolders(folderID)),
		Files:   len(t.ChildItems(folderID)),
	}
}

// Breadcrumbs returns the path from the topmost ancestor down to folderID.
// A parent reference to a folder missing from the snapshot ends the walk.
func (t *Tree) Breadcrumbs(folderID string) ([]models.MediaFolder, error) {
	current, ok := t.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", folderID, ErrFolderNotFound)
	}

	var reversed []models.MediaFolder
	for steps := 0; ; steps++ {
		if steps >= len(t.folders) {
			return nil, fmt.Errorf("walking up from %q: %w", folderID, ErrCycleDetected)
		}
		reversed = append(reversed, current)
		if current.ParentID == nil {
			break
		}
		parent, ok := t.folders[*current.ParentID]
		if !ok {
			break
		}
		current = parent
	}

	path := make([]models.MediaFolder, len(reversed))
	for i, f := range reversed {
		path[len(reversed)-1-i] = f
	}
	return path, nil
}

// ValidateParent checks that folderID may live under parentID. folderID is
// empty for a folder that does not exist yet.
func (t *Tree) ValidateParent(folderID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == folderID {
		return fmt.Errorf("%w: a folder cannot be its own parent", ErrInvalidParent)
	}
	if _, ok := t.folders[*parentID]; !ok {
		return fmt.Errorf("parent %q: %w", *parentID, ErrFolderNotFound)
	}
	if folderID == "" {
		return nil
	}

	visited := make(map[string]bool)
	current := *parentID
	for {
		if current == folderID {
			return fmt.Errorf("%w: cannot move a folder under its own descendant", ErrCycleDetected)
		}
		if visited[current] {
			return fmt.Errorf("ancestors of %q: %w", *parentID, ErrCycleDetected)
		}
		visited[current] = true

		f, ok := t.folders[current]
		if !ok || f.ParentID == nil {
			return nil
		}
		current = *f.ParentID
	}
}
