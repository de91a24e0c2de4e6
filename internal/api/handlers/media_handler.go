package handlers

import (
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/backend"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

type MediaHandler struct {
	s     service.MediaService
	blobs backend.BlobSource
}

// NewMediaHandler serves the media library. blobs is nil when media URLs
// point at object storage.
func NewMediaHandler(service service.MediaService, blobs backend.BlobSource) *MediaHandler {
	return &MediaHandler{s: service, blobs: blobs}
}

func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	items, err := h.s.ListItems(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	uploads := make([]models.Upload, 0, len(files))
	for _, fh := range files {
		up, err := readUpload(fh)
		if err != nil {
			slog.Error(err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to read " + fh.Filename,
			})
		}
		uploads = append(uploads, up)
	}

	result, err := h.s.Upload(c.UserContext(), uploads, optionalID(c.FormValue("folder_id")))
	if err != nil {
		return respondError(c, err)
	}
	return respondBatch(c, result, result.Err())
}

func (h *MediaHandler) RemoveMedia(c *fiber.Ctx) error {
	if err := h.s.RemoveItem(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MediaHandler) MoveMedia(c *fiber.Ctx) error {
	var input transfer.MoveInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	item, err := h.s.MoveItem(c.UserContext(), c.Params("id"), input.FolderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// ServeBlob returns the bytes behind a local "blob:" media URL.
func (h *MediaHandler) ServeBlob(c *fiber.Ctx) error {
	if h.blobs == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	data, contentType, ok := h.blobs.Open(c.Params("ref"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

func (h *MediaHandler) ListFolders(c *fiber.Ctx) error {
	folders, err := h.s.ListFolders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(folders)
}

// BrowseFolder lists one folder; the id "root" lists the top level.
func (h *MediaHandler) BrowseFolder(c *fiber.Ctx) error {
	view, err := h.s.Browse(c.UserContext(), optionalID(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *MediaHandler) Breadcrumbs(c *fiber.Ctx) error {
	view, err := h.s.Browse(c.UserContext(), optionalID(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view.Breadcrumbs)
}

func (h *MediaHandler) FolderStats(c *fiber.Ctx) error {
	view, err := h.s.Browse(c.UserContext(), optionalID(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view.Stats)
}

func (h *MediaHandler) CreateFolder(c *fiber.Ctx) error {
	var input transfer.FolderInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	folder, err := h.s.CreateFolder(c.UserContext(), input.Name, input.ParentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (h *MediaHandler) RenameFolder(c *fiber.Ctx) error {
	var input transfer.RenameInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	folder, err := h.s.RenameFolder(c.UserContext(), c.Params("id"), input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(folder)
}

func (h *MediaHandler) MoveFolder(c *fiber.Ctx) error {
	var input transfer.ReparentInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	folder, err := h.s.MoveFolder(c.UserContext(), c.Params("id"), input.ParentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(folder)
}

func (h *MediaHandler) RemoveFolder(c *fiber.Ctx) error {
	result, err := h.s.RemoveFolder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func readUpload(fh *multipart.FileHeader) (models.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return models.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.Upload{}, err
	}
	return models.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
