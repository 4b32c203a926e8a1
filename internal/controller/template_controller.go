package controller

import (
	"training-builder-be/internal/dto"
	"training-builder-be/internal/pkg/serverutils"
	"training-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Instantiate(ctx *fiber.Ctx) error
}

type templateController struct {
	templateService service.ITemplateService
}

func NewTemplateController(templateService service.ITemplateService) ITemplateController {
	return &templateController{
		templateService: templateService,
	}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/template/v1")
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post(":id/instantiate", c.Instantiate)
}

func (c *templateController) GetAll(ctx *fiber.Ctx) error {
	category := ctx.Query("category")

	res, err := c.templateService.GetAll(ctx.Context(), category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list templates", res))
}

func (c *templateController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.templateService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show template", res))
}

func (c *templateController) Instantiate(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.InstantiateTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.TemplateId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.templateService.Instantiate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success instantiate template", res))
}
