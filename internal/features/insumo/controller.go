package insumo

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type InsumoController struct {
	service InsumoService
}

func NewInsumoController(service InsumoService) *InsumoController {
	return &InsumoController{service: service}
}

func (c *InsumoController) List(ctx *fiber.Ctx) error {
	projectID, week, year := scopeParams(ctx)

	items, err := c.service.List(ctx.Context(), projectID, week, year)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": items})
}

func (c *InsumoController) Import(ctx *fiber.Ctx) error {
	projectID, week, year := scopeParams(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open uploaded file"})
	}
	defer file.Close()

	summary, err := c.service.Import(ctx.Context(), projectID, week, year, file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(summary)
}

func (c *InsumoController) Export(ctx *fiber.Ctx) error {
	projectID, week, year := scopeParams(ctx)

	data, filename, err := c.service.Export(ctx.Context(), projectID, week, year)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(data)
}

func scopeParams(ctx *fiber.Ctx) (string, int, int) {
	week, _ := strconv.Atoi(ctx.Query("week"))
	year, _ := strconv.Atoi(ctx.Query("year"))
	return ctx.Query("project"), week, year
}
