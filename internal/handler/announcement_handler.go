package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/middleware"
	"clubhub/internal/service/announcement"
)

type AnnouncementHandler struct {
	announcementService announcement.Service
}

func NewAnnouncementHandler(announcementService announcement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	actor := middleware.GetCurrentMember(c)

	var input domain.CreateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	a, err := h.announcementService.Create(c.Context(), actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AnnouncementHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	actor := middleware.GetCurrentMember(c)

	a, err := h.announcementService.Get(c.Context(), id, actor, middleware.GetClientIP(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	actor := middleware.GetCurrentMember(c)

	filter := getAnnouncementFilter(c, actor)

	result, err := h.announcementService.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	var input domain.UpdateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	a, err := h.announcementService.Update(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *AnnouncementHandler) Publish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	if err := h.announcementService.Publish(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Announcement published"})
}

func (h *AnnouncementHandler) Archive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	if err := h.announcementService.Archive(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Announcement archived"})
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	if err := h.announcementService.Delete(c.Context(), id, middleware.GetCurrentMember(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *AnnouncementHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	liked, err := h.announcementService.ToggleLike(c.Context(), id, middleware.GetCurrentMember(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"liked": liked})
}

func (h *AnnouncementHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.announcementService.AddComment(c.Context(), id, middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *AnnouncementHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	result, err := h.announcementService.ListComments(c.Context(), id, middleware.GetCurrentMember(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnnouncementHandler) ListLikes(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("announcementId"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	result, err := h.announcementService.ListLikes(c.Context(), id, middleware.GetCurrentMember(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if limit := c.QueryInt("limit", 10); limit > 0 {
		params.PageSize = limit
	}

	params.Validate()
	return params
}

// getListFilter parses the query parameters shared by every listable
// entity. Type and priority exist only on announcements; see
// getAnnouncementFilter.
func getListFilter(c *fiber.Ctx, actor *domain.Member) domain.ListFilter {
	filter := domain.NewListFilter(actor)
	filter.Pagination = getPaginationParams(c)
	filter.Search = c.Query("search")

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.EntityStatus(statusStr)
		filter.Status = &status
	}
	if branchStr := c.Query("branch_id"); branchStr != "" {
		if branchID, err := uuid.Parse(branchStr); err == nil {
			filter.BranchID = &branchID
		}
	}
	if visStr := c.Query("visibility"); visStr != "" {
		filter.NarrowVisibility(domain.Visibility(visStr))
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filter.DateFrom = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			filter.DateTo = &to
		}
	}

	return filter
}

func getAnnouncementFilter(c *fiber.Ctx, actor *domain.Member) domain.ListFilter {
	filter := getListFilter(c, actor)
	if typeStr := c.Query("type"); typeStr != "" {
		filter.Type = &typeStr
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		filter.Priority = &priorityStr
	}
	return filter
}
