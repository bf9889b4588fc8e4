package controller

import (
	"docrag-be/internal/pkg/serverutils"
	"docrag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
	RecentChats(ctx *fiber.Ctx) error
	CleanupStatus(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/chat", jwtMiddleware)
	h.Get("recent", c.RecentChats)
	h.Get("cleanup/:jobId", c.CleanupStatus)
}

// RecentChats returns the sidebar list; orphaned sessions are removed in the
// background and can be followed through cleanup_job_id.
func (c *chatController) RecentChats(ctx *fiber.Ctx) error {
	res, err := c.service.RecentChats(ctx.UserContext(), serverutils.UserID(ctx), serverutils.AuthToken(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recent chats", res))
}

func (c *chatController) CleanupStatus(ctx *fiber.Ctx) error {
	res, err := c.service.CleanupStatus(ctx.UserContext(), ctx.Params("jobId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get cleanup status", res))
}
