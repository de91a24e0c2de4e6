package transfer

type FolderInput struct {
	Name     string  `json:"name" validate:"required,max=120"`
	ParentID *string `json:"parentId"`
}

type RenameInput struct {
	Name string `json:"name" validate:"required,max=120"`
}

// MoveInput targets a folder; a null or missing folderId means the root.
type MoveInput struct {
	FolderID *string `json:"folderId"`
}

// ReparentInput moves a folder; a null or missing parentId means the root.
type ReparentInput struct {
	ParentID *string `json:"parentId"`
}
