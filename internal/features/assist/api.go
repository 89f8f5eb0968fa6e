package assist

import (
	"go-transformer/internal/common/api"
	"go-transformer/internal/features/schema"

	"github.com/gofiber/fiber/v2"
)

type AssistApi struct {
	Controller    *AssistController
	SchemaService schema.SchemaService
}

func NewAssistApi(controller *AssistController, schemaService schema.SchemaService) api.Route {
	return &AssistApi{Controller: controller, SchemaService: schemaService}
}

func (a *AssistApi) Setup(app *fiber.App) {
	group := app.Group("/api/rules/ai", schema.RequireChatAccess(a.SchemaService))

	group.Post("/update", a.Controller.PostUpdate)
	group.Post("/explain", a.Controller.PostExplain)
	group.Post("/copilot", a.Controller.PostCopilot)
}
