package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/middleware"
	"clubhub/internal/repository"
	"clubhub/internal/service/donation"
)

type DonationHandler struct {
	donationService donation.Service
}

func NewDonationHandler(donationService donation.Service) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateDonationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	d, err := h.donationService.Create(c.Context(), middleware.GetCurrentMember(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *DonationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("donationId"))
	if err != nil {
		return middleware.BadRequest("Invalid donation ID")
	}

	d, err := h.donationService.Get(c.Context(), id, middleware.GetCurrentMember(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(d)
}

func (h *DonationHandler) List(c *fiber.Ctx) error {
	filter := repository.DonationFilter{
		Pagination: getPaginationParams(c),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.DonationStatus(statusStr)
		filter.Status = &status
	}
	if memberStr := c.Query("member_id"); memberStr != "" {
		if memberID, err := uuid.Parse(memberStr); err == nil {
			filter.MemberID = &memberID
		}
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

	result, err := h.donationService.List(c.Context(), middleware.GetCurrentMember(c), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *DonationHandler) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("donationId"))
	if err != nil {
		return middleware.BadRequest("Invalid donation ID")
	}

	var input domain.ReviewDonationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.donationService.Review(c.Context(), id, middleware.GetCurrentMember(c), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Donation reviewed"})
}

func (h *DonationHandler) MonthlyTotals(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)

	totals, err := h.donationService.MonthlyTotals(c.Context(), middleware.GetCurrentMember(c), months)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"totals": totals})
}
