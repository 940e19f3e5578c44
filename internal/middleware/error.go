package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// domainStatus maps business-rule errors to HTTP statuses. Anything
// not listed is treated as an internal error and its detail withheld.
func domainStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrCommentTooLong):
		return fiber.StatusBadRequest, "VALIDATION_ERROR", true
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", true
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrFeedbackNotAllowed):
		return fiber.StatusForbidden, "FORBIDDEN", true
	case errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrAnnouncementNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrDonationNotFound),
		errors.Is(err, domain.ErrGalleryItemNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrNotRegistered):
		return fiber.StatusNotFound, "NOT_FOUND", true
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrFeedbackExists):
		return fiber.StatusConflict, "CONFLICT", true
	case errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrDeadlinePassed),
		errors.Is(err, domain.ErrEventNotOpen),
		errors.Is(err, domain.ErrEventNotCompleted),
		errors.Is(err, domain.ErrParticipationLocked),
		errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest, "BUSINESS_RULE_VIOLATION", true
	}
	return 0, "", false
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	if status, domainCode, ok := domainStatus(err); ok {
		code = status
		errorCode = domainCode
		message = err.Error()
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		}
	}

	traceID := uuid.New().String()[:8]

	if code == fiber.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", traceID, c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
