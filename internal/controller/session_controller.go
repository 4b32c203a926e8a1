package controller

import (
	"training-builder-be/internal/dto"
	"training-builder-be/internal/pkg/serverutils"
	"training-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	tolerance      int
}

func NewSessionController(sessionService service.ISessionService, durationTolerance int) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		tolerance:      durationTolerance,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/publish", c.Publish)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) GetAll(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.sessionService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.sessionService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	if err := c.sessionService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

func (c *sessionController) Publish(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.sessionService.Publish(ctx.Context(), userId, id, c.tolerance)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success publish session", res))
}
