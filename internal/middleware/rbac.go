package middleware

import (
	"github.com/gofiber/fiber/v2"

	"clubhub/internal/domain"
)

func RequireRole(requiredRole domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member := GetCurrentMember(c)
		if member == nil {
			return Unauthorized("Member not found")
		}

		if !member.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member := GetCurrentMember(c)
		if member == nil {
			return Unauthorized("Member not found")
		}

		for _, role := range roles {
			if member.HasRole(role) {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

func GetCurrentRole(c *fiber.Ctx) domain.Role {
	return GetCurrentMember(c).EffectiveRole()
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetCurrentRole(c) == domain.RoleAdmin
}

func IsOfficer(c *fiber.Ctx) bool {
	return GetCurrentRole(c).HasAtLeast(domain.RoleOfficer)
}
