package rules

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type RulesController struct {
	Service RulesService
}

func NewRulesController(service RulesService) *RulesController {
	return &RulesController{Service: service}
}

// GetRules godoc
// @Summary Get the full rule set
// @Description Get the current transformation rule set
// @Tags rules
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/rules [get]
func (c *RulesController) GetRules(ctx *fiber.Ctx) error {
	all, err := c.Service.GetMap(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(all)
}

// PutRules godoc
// @Summary Replace the full rule set
// @Description Validate and atomically replace the transformation rule set
// @Tags rules
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/rules [put]
func (c *RulesController) PutRules(ctx *fiber.Ctx) error {
	saved, err := c.Service.Save(ctx.UserContext(), ctx.Body())
	if err != nil {
		return respondRulesError(ctx, err)
	}

	all, err := saved.ToMap()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(all)
}

// GetRuleType godoc
// @Summary Get one named rule
// @Description Get a single rule's data by rule type name
// @Tags rules
// @Produce json
// @Param ruleType path string true "Rule type name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/rules/{ruleType} [get]
func (c *RulesController) GetRuleType(ctx *fiber.Ctx) error {
	ruleType := ctx.Params("ruleType")
	data, err := c.Service.GetRuleType(ctx.UserContext(), ruleType)
	if err != nil {
		return respondRulesError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"type": ruleType, "data": data})
}

// PutRuleType godoc
// @Summary Update one named rule
// @Description Validate and save a single rule's data by rule type name
// @Tags rules
// @Accept json
// @Produce json
// @Param ruleType path string true "Rule type name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/rules/{ruleType} [put]
func (c *RulesController) PutRuleType(ctx *fiber.Ctx) error {
	ruleType := ctx.Params("ruleType")
	saved, err := c.Service.UpdateRuleType(ctx.UserContext(), ruleType, ctx.Body())
	if err != nil {
		return respondRulesError(ctx, err)
	}

	all, err := saved.ToMap()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"type": ruleType, "data": all[ruleType]})
}

func respondRulesError(ctx *fiber.Ctx, err error) error {
	var notFound *RuleNotFoundError
	if errors.As(err, &notFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
