package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "refdesk-backend/lib/utils/auth-utils"
	"refdesk-backend/models"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func GetUserDesignation(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if designation, exist := claims["designation"]; exist {
		if stringDesignation, ok := designation.(string); ok {
			return stringDesignation
		}
	}
	return ""
}

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "ADMIN_REQUIRED",
			})
		}
		return ctx.Next()
	}
}
