package data

import (
	"go-transformer/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type DataApi struct {
	Controller *DataController
}

func NewDataApi(controller *DataController) api.Route {
	return &DataApi{Controller: controller}
}

func (a *DataApi) Setup(app *fiber.App) {
	group := app.Group("/api/data")

	group.Get("/", a.Controller.GetRecords)
	group.Get("/customers", a.Controller.GetCustomers)
	group.Get("/stats", a.Controller.GetStats)
	group.Post("/import", a.Controller.PostImport)
}
