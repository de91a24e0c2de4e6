package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

type PostHandler struct {
	s      service.PostService
	cs     service.ContentService
	policy bulk.Policy
}

func NewPostHandler(service service.PostService, content service.ContentService, policy bulk.Policy) *PostHandler {
	return &PostHandler{s: service, cs: content, policy: policy}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.s.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var input transfer.PostInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	post, err := h.s.Create(c.UserContext(), input.ToPost(""))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var input transfer.PostInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	post, err := h.s.Update(c.UserContext(), input.ToPost(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	if err := h.s.Remove(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PostHandler) BulkCreate(c *fiber.Ctx) error {
	var input transfer.BulkCreateInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	posts := make([]models.Post, 0, len(input.Posts))
	for _, p := range input.Posts {
		posts = append(posts, p.ToPost(""))
	}

	result := h.s.CreateBatch(c.UserContext(), posts, h.policy)
	return respondBatch(c, result, result.Err())
}

func (h *PostHandler) BulkStatus(c *fiber.Ctx) error {
	var input transfer.BulkStatusInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	result, err := h.s.UpdateStatus(c.UserContext(), input.IDs, input.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondBatch(c, result, result.Err())
}

func (h *PostHandler) BulkRemove(c *fiber.Ctx) error {
	var input transfer.BulkDeleteInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	result := h.s.RemoveMany(c.UserContext(), input.IDs)
	return respondBatch(c, result, result.Err())
}

func (h *PostHandler) ExportPosts(c *fiber.Ctx) error {
	export, err := h.cs.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("socialflow-posts-%s.json", time.Now().Format(time.DateOnly))
	c.Attachment(filename)
	return c.Status(fiber.StatusOK).JSON(export)
}

// ImportPosts accepts the export format either as the request body or as a
// multipart "file" field.
func (h *PostHandler) ImportPosts(c *fiber.Ctx) error {
	data := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			slog.Error(err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to read uploaded file",
			})
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			slog.Error(err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to read uploaded file",
			})
		}
	}

	result, err := h.cs.Import(c.UserContext(), data)
	if err != nil {
		return respondError(c, err)
	}
	return respondBatch(c, result, result.Err())
}

func (h *PostHandler) GeneratePosts(c *fiber.Ctx) error {
	var input transfer.GenerateRequest
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	result, err := h.cs.Generate(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondBatch(c, result, result.Err())
}
