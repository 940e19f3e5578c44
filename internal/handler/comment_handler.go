package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/middleware"
	"clubhub/internal/service/engagement"
)

// CommentHandler covers the kind-agnostic comment operations; comments
// are created through the announcement and event handlers.
type CommentHandler struct {
	engagementService engagement.Service
}

func NewCommentHandler(engagementService engagement.Service) *CommentHandler {
	return &CommentHandler{engagementService: engagementService}
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.engagementService.DeleteComment(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
