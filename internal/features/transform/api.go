package transform

import (
	"go-transformer/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type TransformApi struct {
	Controller *TransformController
}

func NewTransformApi(controller *TransformController) api.Route {
	return &TransformApi{Controller: controller}
}

func (a *TransformApi) Setup(app *fiber.App) {
	group := app.Group("/api/transform")

	group.Post("/preview", a.Controller.PostPreview)
	group.Post("/batch", a.Controller.PostBatch)
	group.Get("/output", a.Controller.GetOutput)
}
