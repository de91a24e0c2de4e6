package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

type AdviceHandler struct {
	s service.ContentService
}

func NewAdviceHandler(service service.ContentService) *AdviceHandler {
	return &AdviceHandler{s: service}
}

func (h *AdviceHandler) GetAdvice(c *fiber.Ctx) error {
	var input transfer.AdviceRequest
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	advice, err := h.s.Advice(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(advice)
}

func (h *AdviceHandler) CampaignIdeas(c *fiber.Ctx) error {
	var input transfer.CampaignIdeasRequest
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	ideas, err := h.s.CampaignIdeas(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ideas)
}
