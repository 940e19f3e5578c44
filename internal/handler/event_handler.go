package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/middleware"
	"clubhub/internal/service/event"
)

type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	actor := middleware.GetCurrentMember(c)

	var input domain.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	e, err := h.eventService.Create(c.Context(), actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	actor := middleware.GetCurrentMember(c)

	e, err := h.eventService.Get(c.Context(), id, actor, middleware.GetClientIP(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(e)
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	actor := middleware.GetCurrentMember(c)

	result, err := h.eventService.List(c.Context(), actor, getListFilter(c, actor))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	e, err := h.eventService.Update(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(e)
}

func (h *EventHandler) Publish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Publish(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event published"})
}

func (h *EventHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Cancel(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event cancelled"})
}

func (h *EventHandler) Complete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Complete(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event completed"})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Delete(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *EventHandler) Register(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.RegisterEventInput
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.eventService.Register(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *EventHandler) Unregister(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Unregister(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Registration withdrawn"})
}

func (h *EventHandler) ListParticipants(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	result, err := h.eventService.ListParticipants(c.Context(), id, middleware.GetCurrentMember(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *EventHandler) UpdateParticipation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	var input domain.UpdateParticipationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.eventService.UpdateParticipation(c.Context(), id, memberID, middleware.GetCurrentMember(c), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Participation updated"})
}

func (h *EventHandler) AddFeedback(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.EventFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	fb, err := h.eventService.AddFeedback(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fb)
}

func (h *EventHandler) ListFeedback(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	result, err := h.eventService.ListFeedback(c.Context(), id, middleware.GetCurrentMember(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *EventHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	liked, err := h.eventService.ToggleLike(c.Context(), id, middleware.GetCurrentMember(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"liked": liked})
}

func (h *EventHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.eventService.AddComment(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *EventHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	result, err := h.eventService.ListComments(c.Context(), id, middleware.GetCurrentMember(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
