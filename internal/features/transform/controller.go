package transform

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-transformer/internal/common/models"
)

type TransformController struct {
	Service TransformService
}

func NewTransformController(service TransformService) *TransformController {
	return &TransformController{Service: service}
}

type previewRequest struct {
	SalesRequestRef string            `json:"sales_request_ref"`
	Record          *models.CRMRecord `json:"record"`
}

// PostPreview godoc
// @Summary Preview one transformed invoice
// @Description Transform a stored record by sales request ref, or an inline record, without persisting anything
// @Tags transform
// @Accept json
// @Produce json
// @Success 200 {object} ERPInvoice
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /api/transform/preview [post]
func (c *TransformController) PostPreview(ctx *fiber.Ctx) error {
	var req previewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Record != nil {
		invoice, err := c.Service.PreviewRecord(ctx.UserContext(), *req.Record)
		if err != nil {
			return respondTransformError(ctx, err)
		}
		return ctx.JSON(invoice)
	}

	if strings.TrimSpace(req.SalesRequestRef) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Provide sales_request_ref or an inline record",
		})
	}

	invoice, err := c.Service.Preview(ctx.UserContext(), req.SalesRequestRef)
	if err != nil {
		return respondTransformError(ctx, err)
	}
	return ctx.JSON(invoice)
}

type batchRequest struct {
	SalesRequestRefs []string `json:"sales_request_refs"`
}

// PostBatch godoc
// @Summary Transform CRM records in batch
// @Description Transform the named sales request refs, or every stored record when the body is empty; unknown refs are listed in missing_sales_request_refs
// @Tags transform
// @Accept json
// @Produce json
// @Success 200 {object} BatchResult
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/transform/batch [post]
func (c *TransformController) PostBatch(ctx *fiber.Ctx) error {
	var req batchRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	result, err := c.Service.RunBatch(ctx.UserContext(), req.SalesRequestRefs)
	if err != nil {
		return respondTransformError(ctx, err)
	}
	return ctx.JSON(result)
}

// GetOutput godoc
// @Summary Get the last batch output
// @Tags transform
// @Produce json
// @Success 200 {object} BatchResult
// @Failure 500 {object} map[string]interface{}
// @Router /api/transform/output [get]
func (c *TransformController) GetOutput(ctx *fiber.Ctx) error {
	result, err := c.Service.Output(ctx.UserContext())
	if err != nil {
		return respondTransformError(ctx, err)
	}
	return ctx.JSON(result)
}

func respondTransformError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNoRefsMatched) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	var missing *MissingRuleError
	if errors.As(err, &missing) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	var invalid *InvalidRecordError
	if errors.As(err, &invalid) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
