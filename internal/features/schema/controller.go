package schema

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type SchemaController struct {
	Service SchemaService
}

func NewSchemaController(service SchemaService) *SchemaController {
	return &SchemaController{Service: service}
}

// GetSchema godoc
// @Summary Get the schema store
// @Description Get the full ERP schema, post-transformation actions and metadata
// @Tags schema
// @Produce json
// @Success 200 {object} SchemaStore
// @Failure 500 {object} map[string]interface{}
// @Router /api/schema-store [get]
func (c *SchemaController) GetSchema(ctx *fiber.Ctx) error {
	store, err := c.Service.Get(ctx.UserContext())
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(store)
}

// PutSchema godoc
// @Summary Replace the schema store
// @Description Normalize and replace the full schema store document
// @Tags schema
// @Accept json
// @Produce json
// @Success 200 {object} SchemaStore
// @Failure 400 {object} map[string]interface{}
// @Router /api/schema-store [put]
func (c *SchemaController) PutSchema(ctx *fiber.Ctx) error {
	var store SchemaStore
	if err := ctx.BodyParser(&store); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := c.Service.Save(ctx.UserContext(), store)
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

// GetStatus godoc
// @Summary Get schema readiness status
// @Description Counts of ERP columns, CRM columns and notification emails plus the chat readiness flag
// @Tags schema
// @Produce json
// @Success 200 {object} Status
// @Failure 500 {object} map[string]interface{}
// @Router /api/schema-store/status [get]
func (c *SchemaController) GetStatus(ctx *fiber.Ctx) error {
	status, err := c.Service.Status(ctx.UserContext())
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(status)
}

// PutERPColumn godoc
// @Summary Create or update an ERP column
// @Tags schema
// @Accept json
// @Produce json
// @Param name path string true "Column name"
// @Success 200 {object} SchemaStore
// @Failure 400 {object} map[string]interface{}
// @Router /api/schema-store/erp/{name} [put]
func (c *SchemaController) PutERPColumn(ctx *fiber.Ctx) error {
	var column ERPSchemaColumn
	if err := ctx.BodyParser(&column); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := c.Service.UpsertERPColumn(ctx.UserContext(), ctx.Params("name"), column)
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

// DeleteERPColumn godoc
// @Summary Delete an ERP column
// @Tags schema
// @Produce json
// @Param name path string true "Column name"
// @Success 200 {object} SchemaStore
// @Failure 404 {object} map[string]interface{}
// @Router /api/schema-store/erp/{name} [delete]
func (c *SchemaController) DeleteERPColumn(ctx *fiber.Ctx) error {
	saved, err := c.Service.DeleteERPColumn(ctx.UserContext(), ctx.Params("name"))
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

type crmColumnRequest struct {
	ColumnName string `json:"column_name"`
	NewName    string `json:"new_name"`
}

// PostCRMColumn godoc
// @Summary Add a CRM column
// @Tags schema
// @Accept json
// @Produce json
// @Success 200 {object} SchemaStore
// @Failure 400 {object} map[string]interface{}
// @Router /api/schema-store/crm [post]
func (c *SchemaController) PostCRMColumn(ctx *fiber.Ctx) error {
	var req crmColumnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := c.Service.AddCRMColumn(ctx.UserContext(), req.ColumnName)
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

// PutCRMColumn godoc
// @Summary Rename a CRM column
// @Tags schema
// @Accept json
// @Produce json
// @Param name path string true "Column name"
// @Success 200 {object} SchemaStore
// @Failure 404 {object} map[string]interface{}
// @Router /api/schema-store/crm/{name} [put]
func (c *SchemaController) PutCRMColumn(ctx *fiber.Ctx) error {
	var req crmColumnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := c.Service.RenameCRMColumn(ctx.UserContext(), ctx.Params("name"), req.NewName)
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

// DeleteCRMColumn godoc
// @Summary Delete a CRM column
// @Tags schema
// @Produce json
// @Param name path string true "Column name"
// @Success 200 {object} SchemaStore
// @Failure 404 {object} map[string]interface{}
// @Router /api/schema-store/crm/{name} [delete]
func (c *SchemaController) DeleteCRMColumn(ctx *fiber.Ctx) error {
	saved, err := c.Service.DeleteCRMColumn(ctx.UserContext(), ctx.Params("name"))
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

type emailRequest struct {
	Email    string `json:"email"`
	NewEmail string `json:"new_email"`
}

// PostNotificationEmail godoc
// @Summary Add the notification email
// @Description Add the single allowed notification email address
// @Tags schema
// @Accept json
// @Produce json
// @Success 200 {object} SchemaStore
// @Failure 400 {object} map[string]interface{}
// @Router /api/schema-store/notifications/email [post]
func (c *SchemaController) PostNotificationEmail(ctx *fiber.Ctx) error {
	var req emailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := c.Service.AddNotificationEmail(ctx.UserContext(), req.Email)
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

// PutNotificationEmail godoc
// @Summary Replace the notification email
// @Tags schema
// @Accept json
// @Produce json
// @Param email path string true "Current email"
// @Success 200 {object} SchemaStore
// @Failure 404 {object} map[string]interface{}
// @Router /api/schema-store/notifications/email/{email} [put]
func (c *SchemaController) PutNotificationEmail(ctx *fiber.Ctx) error {
	var req emailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := c.Service.RenameNotificationEmail(ctx.UserContext(), ctx.Params("email"), req.NewEmail)
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

// DeleteNotificationEmail godoc
// @Summary Delete the notification email
// @Tags schema
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} SchemaStore
// @Failure 404 {object} map[string]interface{}
// @Router /api/schema-store/notifications/email/{email} [delete]
func (c *SchemaController) DeleteNotificationEmail(ctx *fiber.Ctx) error {
	saved, err := c.Service.DeleteNotificationEmail(ctx.UserContext(), ctx.Params("email"))
	if err != nil {
		return respondSchemaError(ctx, err)
	}
	return ctx.JSON(saved)
}

func respondSchemaError(ctx *fiber.Ctx, err error) error {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
