package controller

import (
	"nagrik-mitra-be/internal/dto"
	"nagrik-mitra-be/internal/pkg/serverutils"
	"nagrik-mitra-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISchemeController interface {
	RegisterRoutes(r fiber.Router, authMw fiber.Handler)
	Create(ctx *fiber.Ctx) error
	CreateBulk(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type schemeController struct {
	service service.ISchemeService
}

func NewSchemeController(service service.ISchemeService) ISchemeController {
	return &schemeController{service: service}
}

func (c *schemeController) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	h := r.Group("/scheme/v1")
	// Reads are public; the catalogue is browsable without login.
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)

	h.Post("", authMw, c.Create)
	h.Post("/bulk", authMw, c.CreateBulk)
	h.Put(":id", authMw, c.Update)
	h.Delete(":id", authMw, c.Delete)
}

func (c *schemeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSchemeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create scheme", res))
}

func (c *schemeController) CreateBulk(ctx *fiber.Ctx) error {
	var req dto.BulkCreateSchemesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateBulk(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success import schemes", res))
}

func (c *schemeController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid scheme id"))
	}

	var req dto.UpdateSchemeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update scheme", res))
}

func (c *schemeController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid scheme id"))
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete scheme", nil))
}

func (c *schemeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid scheme id"))
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scheme", res))
}

func (c *schemeController) GetAll(ctx *fiber.Ctx) error {
	category := ctx.Query("category")

	res, err := c.service.List(ctx.Context(), category)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all schemes", res))
}
