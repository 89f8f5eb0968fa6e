package assist

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-transformer/internal/features/rules"
)

type AssistController struct {
	Service AssistService
}

func NewAssistController(service AssistService) *AssistController {
	return &AssistController{Service: service}
}

type updateRequest struct {
	Instruction string `json:"instruction"`
	Apply       bool   `json:"apply"`
}

// PostUpdate godoc
// @Summary Propose or apply an AI rule update
// @Description Translate a natural-language instruction into a rule change proposal; apply=true atomically replaces the rule set
// @Tags rules-ai
// @Accept json
// @Produce json
// @Success 200 {object} UpdateResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/rules/ai/update [post]
func (c *AssistController) PostUpdate(ctx *fiber.Ctx) error {
	var req updateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	response, err := c.Service.Update(ctx.UserContext(), req.Instruction, req.Apply)
	if err != nil {
		return respondAssistError(ctx, err)
	}
	return ctx.JSON(response)
}

type explainRequest struct {
	Situation string `json:"situation"`
}

// PostExplain godoc
// @Summary Explain applicable rules for a situation
// @Tags rules-ai
// @Accept json
// @Produce json
// @Success 200 {object} ExplainResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/rules/ai/explain [post]
func (c *AssistController) PostExplain(ctx *fiber.Ctx) error {
	var req explainRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	response, err := c.Service.Explain(ctx.UserContext(), req.Situation)
	if err != nil {
		return respondAssistError(ctx, err)
	}
	return ctx.JSON(response)
}

type copilotRequest struct {
	Messages []ChatMessage `json:"messages"`
	Apply    bool          `json:"apply"`
}

// PostCopilot godoc
// @Summary Conversational rule copilot
// @Description Answer, clarify, or propose rule changes from a conversation; apply=true saves a returned proposal
// @Tags rules-ai
// @Accept json
// @Produce json
// @Success 200 {object} CopilotResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/rules/ai/copilot [post]
func (c *AssistController) PostCopilot(ctx *fiber.Ctx) error {
	var req copilotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	response, err := c.Service.Copilot(ctx.UserContext(), req.Messages, req.Apply)
	if err != nil {
		return respondAssistError(ctx, err)
	}
	return ctx.JSON(response)
}

func respondAssistError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNoAIConfigured) {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var rulesValidation *rules.ValidationError
	if errors.As(err, &rulesValidation) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
