package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

type CampaignHandler struct {
	s service.CampaignService
}

func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{s: service}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.s.ListCampaigns(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(campaigns)
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var input transfer.CampaignInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	campaign, err := h.s.CreateCampaign(c.UserContext(), input.ToCampaign(""))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	var input transfer.CampaignInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	campaign, err := h.s.UpdateCampaign(c.UserContext(), input.ToCampaign(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(campaign)
}

func (h *CampaignHandler) RemoveCampaign(c *fiber.Ctx) error {
	if err := h.s.RemoveCampaign(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CampaignHandler) ListStudios(c *fiber.Ctx) error {
	studios, err := h.s.ListStudios(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(studios)
}

func (h *CampaignHandler) CreateStudio(c *fiber.Ctx) error {
	var input transfer.StudioInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	studio, err := h.s.CreateStudio(c.UserContext(), input.ToStudio(""))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(studio)
}

func (h *CampaignHandler) UpdateStudio(c *fiber.Ctx) error {
	var input transfer.StudioInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, err)
	}

	studio, err := h.s.UpdateStudio(c.UserContext(), input.ToStudio(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(studio)
}

func (h *CampaignHandler) RemoveStudio(c *fiber.Ctx) error {
	if err := h.s.RemoveStudio(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
