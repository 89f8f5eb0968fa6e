package data

import (
	"github.com/gofiber/fiber/v2"
)

type DataController struct {
	Service DataService
}

func NewDataController(service DataService) *DataController {
	return &DataController{Service: service}
}

// GetRecords godoc
// @Summary List CRM records
// @Description Paginated CRM records, optionally filtered by customer or sales request ref
// @Tags data
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search text"
// @Success 200 {object} Page
// @Failure 500 {object} map[string]interface{}
// @Router /api/data [get]
func (c *DataController) GetRecords(ctx *fiber.Ctx) error {
	page := int64(ctx.QueryInt("page", 1))
	limit := int64(ctx.QueryInt("limit", 10))
	search := ctx.Query("search")

	result, err := c.Service.Paginated(ctx.UserContext(), page, limit, search)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}

// GetCustomers godoc
// @Summary List unique customers
// @Tags data
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/data/customers [get]
func (c *DataController) GetCustomers(ctx *fiber.Ctx) error {
	customers, err := c.Service.Customers(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"customers": customers})
}

// GetStats godoc
// @Summary CRM store statistics
// @Tags data
// @Produce json
// @Success 200 {object} Stats
// @Failure 500 {object} map[string]interface{}
// @Router /api/data/stats [get]
func (c *DataController) GetStats(ctx *fiber.Ctx) error {
	stats, err := c.Service.Stats(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(stats)
}

// PostImport godoc
// @Summary Import CRM records
// @Description Upload a .csv or .xlsx file of CRM sales requests
// @Tags data
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Records file"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/data/import [post]
func (c *DataController) PostImport(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	result, err := c.Service.ImportFile(ctx.UserContext(), fileHeader.Filename, file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}
