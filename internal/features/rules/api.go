package rules

import (
	"go-transformer/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type RulesApi struct {
	Controller *RulesController
}

func NewRulesApi(controller *RulesController) api.Route {
	return &RulesApi{Controller: controller}
}

func (a *RulesApi) Setup(app *fiber.App) {
	group := app.Group("/api/rules")

	group.Get("/", a.Controller.GetRules)
	group.Put("/", a.Controller.PutRules)
	group.Get("/:ruleType", a.Controller.GetRuleType)
	group.Put("/:ruleType", a.Controller.PutRuleType)
}
