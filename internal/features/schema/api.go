package schema

import (
	"go-transformer/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SchemaApi struct {
	Controller *SchemaController
}

func NewSchemaApi(controller *SchemaController) api.Route {
	return &SchemaApi{Controller: controller}
}

func (a *SchemaApi) Setup(app *fiber.App) {
	group := app.Group("/api/schema-store")

	group.Get("/", a.Controller.GetSchema)
	group.Put("/", a.Controller.PutSchema)
	group.Get("/status", a.Controller.GetStatus)

	group.Put("/erp/:name", a.Controller.PutERPColumn)
	group.Delete("/erp/:name", a.Controller.DeleteERPColumn)

	group.Post("/crm", a.Controller.PostCRMColumn)
	group.Put("/crm/:name", a.Controller.PutCRMColumn)
	group.Delete("/crm/:name", a.Controller.DeleteCRMColumn)

	group.Post("/notifications/email", a.Controller.PostNotificationEmail)
	group.Put("/notifications/email/:email", a.Controller.PutNotificationEmail)
	group.Delete("/notifications/email/:email", a.Controller.DeleteNotificationEmail)
}
