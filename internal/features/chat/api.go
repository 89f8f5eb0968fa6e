package chat

import (
	"go-transformer/internal/common/api"
	"go-transformer/internal/features/schema"

	"github.com/gofiber/fiber/v2"
)

type ChatApi struct {
	Controller    *ChatController
	SchemaService schema.SchemaService
}

func NewChatApi(controller *ChatController, schemaService schema.SchemaService) api.Route {
	return &ChatApi{Controller: controller, SchemaService: schemaService}
}

func (a *ChatApi) Setup(app *fiber.App) {
	group := app.Group("/api/chat", schema.RequireChatAccess(a.SchemaService))

	group.Post("/stream", a.Controller.PostStream)
}
