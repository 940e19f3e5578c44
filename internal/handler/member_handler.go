package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/middleware"
	"clubhub/internal/repository"
	"clubhub/internal/service/member"
)

type MemberHandler struct {
	memberService member.Service
}

func NewMemberHandler(memberService member.Service) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	m := middleware.GetCurrentMember(c)
	if m == nil {
		return middleware.Unauthorized("Member not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(m)
}

func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	m := middleware.GetCurrentMember(c)
	if m == nil {
		return middleware.Unauthorized("Member not authenticated")
	}

	var input domain.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.memberService.UpdateProfile(c.Context(), m.ID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *MemberHandler) List(c *fiber.Ctx) error {
	filter := repository.MemberFilter{
		Search:     c.Query("search"),
		Pagination: getPaginationParams(c),
	}

	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.Role(roleStr)
		if !role.IsValid() {
			return middleware.BadRequest("Invalid role filter")
		}
		filter.Role = &role
	}
	if branchStr := c.Query("branch_id"); branchStr != "" {
		branchID, err := uuid.Parse(branchStr)
		if err != nil {
			return middleware.BadRequest("Invalid branch ID")
		}
		filter.BranchID = &branchID
	}
	if approvedStr := c.Query("approved"); approvedStr != "" {
		approved := approvedStr == "true"
		filter.IsApproved = &approved
	}

	result, err := h.memberService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MemberHandler) Get(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	m, err := h.memberService.GetByID(c.Context(), memberID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(m)
}

func (h *MemberHandler) AssignRole(c *fiber.Ctx) error {
	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.memberService.AssignRole(c.Context(), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Role assigned"})
}

func (h *MemberHandler) Approve(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	if err := h.memberService.Approve(c.Context(), memberID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Member approved"})
}

func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	if err := h.memberService.Deactivate(c.Context(), memberID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Member deactivated"})
}

func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	if err := h.memberService.Delete(c.Context(), memberID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
