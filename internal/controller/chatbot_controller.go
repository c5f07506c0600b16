package controller

import (
	"nagrik-mitra-be/internal/dto"
	"nagrik-mitra-be/internal/pkg/serverutils"
	"nagrik-mitra-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, authMw fiber.Handler, optionalAuthMw fiber.Handler)
	SendChat(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, authMw fiber.Handler, optionalAuthMw fiber.Handler) {
	h := r.Group("/chatbot/v1")
	// Chat works anonymously; a token just enables profile persistence.
	h.Post("/chat", optionalAuthMw, c.SendChat)
	h.Post("/session", optionalAuthMw, c.CreateSession)
	h.Get("/session/:id/history", optionalAuthMw, c.GetHistory)
	h.Get("/session", authMw, c.GetSessions)
	h.Put("/session/:id", authMw, c.RenameSession)
	h.Delete("/session/:id", authMw, c.DeleteSession)
}

// optionalUserId reads the user id set by the optional auth middleware, nil
// when the request is anonymous.
func optionalUserId(ctx *fiber.Ctx) *uuid.UUID {
	raw := ctx.Locals("user_id")
	if raw == nil {
		return nil
	}
	str, ok := raw.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return nil
	}
	return &id
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), optionalUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), optionalUserId(ctx), req.Title)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatbotController) GetSessions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.ListSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat sessions", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid chat session id"))
	}

	res, err := c.service.History(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) RenameSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid chat session id"))
	}

	var req dto.UpdateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameSession(ctx.Context(), userId, id, req.Title)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename chat session", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid chat session id"))
	}

	if err := c.service.DeleteSession(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete chat session", nil))
}
