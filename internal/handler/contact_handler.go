package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/middleware"
	"clubhub/internal/service/contact"
)

type ContactHandler struct {
	contactService contact.Service
}

func NewContactHandler(contactService contact.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var input domain.CreateContactInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.contactService.Submit(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return middleware.BadRequest("Invalid message ID")
	}

	msg, err := h.contactService.Get(c.Context(), id, middleware.GetCurrentMember(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(msg)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	var status *domain.ContactStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := domain.ContactStatus(statusStr)
		status = &s
	}

	result, err := h.contactService.List(c.Context(), middleware.GetCurrentMember(c), status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ContactHandler) Respond(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return middleware.BadRequest("Invalid message ID")
	}

	var input domain.RespondContactInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.contactService.Respond(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(msg)
}

func (h *ContactHandler) Close(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return middleware.BadRequest("Invalid message ID")
	}

	if err := h.contactService.Close(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Message closed"})
}
