package controller

import (
	"training-builder-be/internal/dto"
	"training-builder-be/internal/pkg/serverutils"
	"training-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOutlineController interface {
	RegisterRoutes(r fiber.Router)
	SectionTypes(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	AddSection(ctx *fiber.Ctx) error
	UpdateSection(ctx *fiber.Ctx) error
	RemoveSection(ctx *fiber.Ctx) error
	DuplicateSection(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	ConvertLegacy(ctx *fiber.Ctx) error
}

type outlineController struct {
	outlineService service.IOutlineService
}

func NewOutlineController(outlineService service.IOutlineService) IOutlineController {
	return &outlineController{
		outlineService: outlineService,
	}
}

func (c *outlineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/outline/v1")
	h.Get("section-types", c.SectionTypes)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post(":sessionId/generate", c.Generate)
	protected.Post(":sessionId/select", c.Select)
	protected.Post(":sessionId/sections", c.AddSection)
	protected.Patch(":sessionId/sections/:sectionId", c.UpdateSection)
	protected.Delete(":sessionId/sections/:sectionId", c.RemoveSection)
	protected.Post(":sessionId/sections/:sectionId/duplicate", c.DuplicateSection)
	protected.Put(":sessionId/sections/order", c.Reorder)
	protected.Get(":sessionId/validate", c.Validate)
	protected.Post(":sessionId/convert-legacy", c.ConvertLegacy)
}

func (c *outlineController) SectionTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list section types", c.outlineService.SectionTypes()))
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return uuid.Nil, fiber.ErrBadRequest
	}
	return id, nil
}

func (c *outlineController) Generate(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateOutlineRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.outlineService.Generate(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate outline candidates", res))
}

func (c *outlineController) Select(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectOutlineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.outlineService.Select(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select outline", res))
}

func (c *outlineController) AddSection(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AddSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.outlineService.AddSection(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add section", res))
}

func (c *outlineController) UpdateSection(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	sectionId, err := uuid.Parse(ctx.Params("sectionId"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId
	req.SectionId = sectionId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.outlineService.UpdateSection(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update section", res))
}

func (c *outlineController) RemoveSection(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	sectionId, err := uuid.Parse(ctx.Params("sectionId"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.outlineService.RemoveSection(ctx.Context(), userId, sessionId, sectionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove section", res))
}

func (c *outlineController) DuplicateSection(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	sectionId, err := uuid.Parse(ctx.Params("sectionId"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.outlineService.DuplicateSection(ctx.Context(), userId, sessionId, sectionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success duplicate section", res))
}

func (c *outlineController) Reorder(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ReorderSectionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.outlineService.Reorder(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reorder sections", res))
}

func (c *outlineController) Validate(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.outlineService.Validate(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success validate outline", res))
}

func (c *outlineController) ConvertLegacy(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ConvertLegacyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	res, err := c.outlineService.ConvertLegacy(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success convert legacy outline", res))
}
