package audit

import (
	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// GetAuditLogs godoc
// @Summary List recent audit entries
// @Description Get the most recent rule and schema change log entries
// @Tags audit
// @Produce json
// @Param limit query int false "Max entries" default(50)
// @Success 200 {array} models.AuditLog
// @Failure 500 {object} map[string]interface{}
// @Router /api/audit [get]
func (c *AuditController) GetAuditLogs(ctx *fiber.Ctx) error {
	limit := int64(ctx.QueryInt("limit", 50))
	logs, err := c.Service.Recent(ctx.UserContext(), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(logs)
}
