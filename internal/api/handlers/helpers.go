package handlers

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/media"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

// GetUserID returns the principal set by the auth middleware, or "" for an
// anonymous request.
func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// ErrorStatus maps a domain error onto an HTTP status.
func ErrorStatus(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, store.ErrAuthRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound), errors.Is(err, media.ErrFolderNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &validationErrs),
		errors.Is(err, media.ErrCycleDetected),
		errors.Is(err, media.ErrInvalidParent),
		errors.Is(err, media.ErrInvalidName),
		errors.Is(err, transfer.ErrInvalidImport):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrBackendUnavailable), errors.Is(err, service.ErrAdviceDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, bulk.ErrPartialBatchFailure):
		return fiber.StatusMultiStatus
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(err.Error())
	} else {
		slog.Info(err.Error())
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// respondBatch answers 200 when every item succeeded and 207 otherwise, with
// the result as the body either way.
func respondBatch(c *fiber.Ctx, result any, err error) error {
	if err != nil {
		return c.Status(ErrorStatus(err)).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		slog.Info(err.Error())
		return errors.New("Unable to parse request body")
	}
	return transfer.Validate(out)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// optionalID reads a folder reference where "" and "root" mean none.
func optionalID(value string) *string {
	if value == "" || value == "root" || value == "null" {
		return nil
	}
	return &value
}
