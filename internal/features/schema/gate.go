package schema

import "github.com/gofiber/fiber/v2"

// RequireChatAccess blocks AI chat endpoints until the schema is ready.
func RequireChatAccess(service SchemaService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		status, err := service.Status(ctx.UserContext())
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !status.CanUseChat {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "AI chat is locked. Add at least one ERP column and one CRM column in schema setup first.",
			})
		}
		return ctx.Next()
	}
}
