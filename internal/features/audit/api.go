package audit

import (
	"go-transformer/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	Controller *AuditController
}

func NewAuditApi(controller *AuditController) api.Route {
	return &AuditApi{Controller: controller}
}

func (a *AuditApi) Setup(app *fiber.App) {
	app.Get("/api/audit", a.Controller.GetAuditLogs)
}
