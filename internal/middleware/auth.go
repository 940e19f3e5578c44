package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/service/auth"
)

const (
	MemberContextKey   = "member"
	MemberIDContextKey = "member_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		token := parts[1]
		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		member, err := authService.GetMemberByID(c.Context(), claims.MemberID)
		if err != nil || member == nil || !member.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Member not found",
			})
		}

		c.Locals(MemberContextKey, member)
		c.Locals(MemberIDContextKey, member.ID)

		return c.Next()
	}
}

// AuthOptional resolves the actor when a valid bearer token is present
// and continues anonymously otherwise. Public routes use it so
// visibility rules can still recognize signed-in members.
func AuthOptional(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Next()
		}

		member, err := authService.GetMemberByID(c.Context(), claims.MemberID)
		if err != nil || member == nil || !member.IsActive {
			return c.Next()
		}

		c.Locals(MemberContextKey, member)
		c.Locals(MemberIDContextKey, member.ID)

		return c.Next()
	}
}

func GetCurrentMember(c *fiber.Ctx) *domain.Member {
	member, ok := c.Locals(MemberContextKey).(*domain.Member)
	if !ok {
		return nil
	}
	return member
}

func GetCurrentMemberID(c *fiber.Ctx) uuid.UUID {
	memberID, ok := c.Locals(MemberIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return memberID
}
